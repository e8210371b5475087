package handler

import (
	"net/http"
	"strconv"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GetHistory pages through the assignment log, most recent first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			h.errorResponse(w, r, "invalid limit")
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	offset := 0
	if offsetParam := r.URL.Query().Get("offset"); offsetParam != "" {
		parsed, err := strconv.Atoi(offsetParam)
		if err != nil || parsed < 0 {
			h.errorResponse(w, r, "invalid offset")
			return
		}
		offset = parsed
	}

	logs, err := h.repository.PageRecentLogs(limit, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "history retrieved", logs)
}
