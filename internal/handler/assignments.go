package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
	"github.com/clinicops/station-scheduler/backend/internal/scheduler"
)

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID  int64   `json:"employeeID" validate:"required"`
		StationID   int64   `json:"stationID" validate:"required"`
		StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate     *string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
		Kind        string  `json:"kind" validate:"required,oneof=permanent temporary"`
		ShiftStart  string  `json:"shiftStart" validate:"required,datetime=15:04:05"`
		ShiftEnd    string  `json:"shiftEnd" validate:"required,datetime=15:04:05"`
		PerformedBy string  `json:"performedBy" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		endDate = &parsed
	}

	schedule, err := h.scheduler.Assign(scheduler.AssignParams{
		EmployeeID:  req.EmployeeID,
		StationID:   req.StationID,
		StartDate:   startDate,
		EndDate:     endDate,
		Kind:        domain.AssignmentKind(req.Kind),
		ShiftStart:  req.ShiftStart,
		ShiftEnd:    req.ShiftEnd,
		PerformedBy: req.PerformedBy,
	})
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.afterMutation(domain.LogCreated, schedule, "")
	h.successResponse(w, r, "assignment created", schedule)
}

func (h *Handler) Reassign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StationID     int64  `json:"stationID" validate:"required"`
		NewEmployeeID int64  `json:"newEmployeeID" validate:"required"`
		ReassignDate  string `json:"reassignDate" validate:"required,datetime=2006-01-02"`
		PerformedBy   string `json:"performedBy" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	reassignDate, err := time.Parse(time.DateOnly, req.ReassignDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	result, err := h.scheduler.Reassign(req.StationID, req.NewEmployeeID, reassignDate, req.PerformedBy)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	h.afterMutation(domain.LogReassigned, result.Created, "")
	h.successResponse(w, r, "station reassigned", result)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StationID   int64  `json:"stationID" validate:"required"`
		RemovalDate string `json:"removalDate" validate:"required,datetime=2006-01-02"`
		RemovalKind string `json:"removalKind" validate:"required,oneof=end_assignment deactivate"`
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

	removalDate, err := time.Parse(time.DateOnly, req.RemovalDate)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule, err := h.scheduler.Remove(req.StationID, removalDate, scheduler.RemovalKind(req.RemovalKind), req.PerformedBy)
	if err != nil {
		h.schedulerError(w, r, err)
		return
	}

	action := domain.LogEnded
	if scheduler.RemovalKind(req.RemovalKind) == scheduler.RemovalDeactivate {
		action = domain.LogDeactivated
	}
	h.afterMutation(action, schedule, req.RemovalDate)
	h.successResponse(w, r, "assignment removed", schedule)
}

// schedulerError translates the scheduler's error taxonomy into the response
// envelope. Conflicts carry the conflicting assignment as data; anything
// unrecognized is a persistence failure.
func (h *Handler) schedulerError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *domain.ConflictError

	switch {
	case errors.As(err, &conflict):
		h.conflictResponse(w, r, conflict.Error(), conflict)
	case errors.Is(err, domain.ErrEmployeeAlreadyAssigned):
		h.errorResponse(w, r, "employee already has an overlapping assignment")
	case errors.Is(err, domain.ErrStationOccupied):
		h.errorResponse(w, r, "station already has an assignment in the requested range")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.errorResponse(w, r, "employee not found")
	case errors.Is(err, domain.ErrStationNotFound):
		h.errorResponse(w, r, "station not found")
	case errors.Is(err, domain.ErrEmployeeInactive):
		h.errorResponse(w, r, "employee is inactive")
	case errors.Is(err, domain.ErrStationInactive):
		h.errorResponse(w, r, "station is inactive")
	case errors.Is(err, domain.ErrInvalidDateRange):
		h.errorResponse(w, r, "invalid date range")
	case errors.Is(err, domain.ErrNoCurrentAssignment):
		h.errorResponse(w, r, "station has no current assignment")
	default:
		h.internalServerError(w, r, err)
	}
}

// afterMutation invalidates the cached boards and publishes the change
// event. effectiveDate overrides the schedule's start date in the event,
// which matters for removals.
func (h *Handler) afterMutation(action domain.LogAction, schedule *domain.AssignmentSchedule, effectiveDate string) {
	h.invalidateBoardCache()

	msg := &domain.AssignmentEventMessage{
		Action:     action,
		ShiftStart: schedule.ShiftStart,
		ShiftEnd:   schedule.ShiftEnd,
	}

	if effectiveDate != "" {
		msg.EffectiveDate = effectiveDate
	} else {
		msg.EffectiveDate = schedule.StartDate.Format(time.DateOnly)
	}

	if station, err := h.repository.GetStationByID(schedule.StationID); err == nil {
		msg.StationName = station.Name
	}
	if employee, err := h.repository.GetEmployeeByID(schedule.EmployeeID); err == nil {
		msg.EmployeeName = employee.FullName
		msg.EmployeeEmail = employee.Email
	}

	h.publishAssignmentEvent(msg)
}
