package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
	"github.com/clinicops/station-scheduler/backend/internal/scheduler"
)

// GetStationBoard returns the effective-assignment view for the requested
// date (today when absent). The resolved board is cached in redis under the
// current generation; mutations bump the generation.
func (h *Handler) GetStationBoard(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		dateParam = time.Now().Format(time.DateOnly)
	}

	date, err := time.Parse(time.DateOnly, dateParam)
	if err != nil {
		h.errorResponse(w, r, "invalid date, expected YYYY-MM-DD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	generation, err := h.redisClient.Get(ctx, boardGenerationKey).Result()
	if err != nil && err != redis.Nil {
		h.internalServerError(w, r, err)
		return
	}
	cacheKey := fmt.Sprintf("station_board_%s_%s", generation, dateParam)

	if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var entries []*scheduler.BoardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			h.successResponse(w, r, "station board resolved", entries)
			return
		}
	}

	entries, err := h.scheduler.ResolveForDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if serialized, err := json.Marshal(entries); err == nil {
		// Cache failures only cost the next caller a database round trip.
		_ = h.redisClient.Set(ctx, cacheKey, serialized, time.Duration(h.config.Board.CacheExpiration)*time.Second).Err()
	}

	h.successResponse(w, r, "station board resolved", entries)
}

func (h *Handler) GetAllStations(w http.ResponseWriter, r *http.Request) {
	stations, err := h.repository.GetAllStations()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "stations retrieved", stations)
}

func (h *Handler) ToggleStation(w http.ResponseWriter, r *http.Request) {
	station := r.Context().Value(StationCtx).(*domain.Station)

	var req struct {
		MakeActive  *bool  `json:"makeActive" validate:"required"`
		PerformedBy string `json:"performedBy" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	toggled, err := h.scheduler.ToggleStation(station.ID, *req.MakeActive, req.PerformedBy)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.invalidateBoardCache()

	action := domain.LogDeactivated
	if *req.MakeActive {
		action = domain.LogActivated
	}
	h.publishAssignmentEvent(&domain.AssignmentEventMessage{
		Action:        action,
		StationName:   toggled.Name,
		EffectiveDate: time.Now().Format(time.DateOnly),
	})

	h.successResponse(w, r, "station toggled", toggled)
}
