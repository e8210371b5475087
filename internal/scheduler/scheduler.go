package scheduler

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

// Scheduler enforces the one-employee-one-station invariant. Every mutating
// operation validates first, then hands the store a single transactional unit
// of work that also carries the audit entries, so a failed operation never
// leaves a partial write or an orphaned log row.
type Scheduler struct {
	store Store
}

func New(store Store) *Scheduler {
	return &Scheduler{store: store}
}

type RemovalKind string

const (
	RemovalEndAssignment RemovalKind = "end_assignment"
	RemovalDeactivate    RemovalKind = "deactivate"
)

type AssignParams struct {
	EmployeeID  int64
	StationID   int64
	StartDate   time.Time
	EndDate     *time.Time
	Kind        domain.AssignmentKind
	ShiftStart  string
	ShiftEnd    string
	PerformedBy string
}

func (s *Scheduler) Assign(p AssignParams) (*domain.AssignmentSchedule, error) {
	employee, err := s.store.GetEmployeeByID(p.EmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !employee.IsActive {
		return nil, domain.ErrEmployeeInactive
	}

	station, err := s.store.GetStationByID(p.StationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}
	if !station.IsActive {
		return nil, domain.ErrStationInactive
	}

	if p.Kind == domain.AssignmentPermanent && p.EndDate != nil {
		return nil, domain.ErrInvalidDateRange
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	conflict, err := s.findRangeConflict(p.EmployeeID, p.StationID, p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	occupied, err := s.stationOccupied(p.StationID, 0, p.StartDate, p.EndDate)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, domain.ErrStationOccupied
	}

	schedule := &domain.AssignmentSchedule{
		StationID:  p.StationID,
		EmployeeID: p.EmployeeID,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Kind:       p.Kind,
		ShiftStart: p.ShiftStart,
		ShiftEnd:   p.ShiftEnd,
		CreatedBy:  p.PerformedBy,
	}
	log := &domain.AssignmentLog{
		Action:      domain.LogCreated,
		StationID:   p.StationID,
		EmployeeID:  &p.EmployeeID,
		PerformedBy: p.PerformedBy,
		Note:        fmt.Sprintf("assigned %s to %s starting %s", employee.FullName, station.Name, p.StartDate.Format(time.DateOnly)),
	}

	if err := s.store.CreateAssignmentWithLog(schedule, log); err != nil {
		return nil, err
	}

	return schedule, nil
}

type ReassignResult struct {
	Closed  *domain.AssignmentSchedule `json:"closed"`
	Created *domain.AssignmentSchedule `json:"created"`
}

func (s *Scheduler) Reassign(stationID, newEmployeeID int64, reassignDate time.Time, performedBy string) (*ReassignResult, error) {
	station, err := s.store.GetStationByID(stationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}

	current, err := s.store.GetCurrentAssignmentByStation(stationID, reassignDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoCurrentAssignment
		}
		return nil, err
	}

	// Closing the outgoing row at reassignDate-1 must not produce an
	// interval that ends before it starts.
	if !reassignDate.After(current.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	newEmployee, err := s.store.GetEmployeeByID(newEmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !newEmployee.IsActive {
		return nil, domain.ErrEmployeeInactive
	}

	oldEmployee, err := s.store.GetEmployeeByID(current.EmployeeID)
	if err != nil {
		return nil, err
	}

	// The employee's current posting at this very station is not a conflict.
	// Conflicts elsewhere are reported, never cascaded away.
	conflict, err := s.findRangeConflict(newEmployeeID, stationID, reassignDate, current.EndDate)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	next := &domain.AssignmentSchedule{
		StationID:  stationID,
		EmployeeID: newEmployeeID,
		StartDate:  reassignDate,
		EndDate:    current.EndDate,
		Kind:       current.Kind,
		ShiftStart: current.ShiftStart,
		ShiftEnd:   current.ShiftEnd,
		CreatedBy:  performedBy,
	}

	note := fmt.Sprintf("reassigned %s: %s replaced by %s effective %s", station.Name, oldEmployee.FullName, newEmployee.FullName, reassignDate.Format(time.DateOnly))
	logs := []*domain.AssignmentLog{
		{
			Action:      domain.LogEnded,
			StationID:   stationID,
			EmployeeID:  &current.EmployeeID,
			PerformedBy: performedBy,
			Note:        note,
		},
		{
			Action:      domain.LogReassigned,
			StationID:   stationID,
			EmployeeID:  &newEmployeeID,
			PerformedBy: performedBy,
			Note:        note,
		},
	}

	prevEnd := reassignDate.AddDate(0, 0, -1)
	if err := s.store.ReassignWithLogs(current, prevEnd, next, logs); err != nil {
		return nil, err
	}

	return &ReassignResult{Closed: current, Created: next}, nil
}

func (s *Scheduler) Remove(stationID int64, removalDate time.Time, kind RemovalKind, performedBy string) (*domain.AssignmentSchedule, error) {
	station, err := s.store.GetStationByID(stationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}

	current, err := s.store.GetCurrentAssignmentByStation(stationID, removalDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoCurrentAssignment
		}
		return nil, err
	}

	switch kind {
	case RemovalEndAssignment:
		// An end date before the start date is never written; rows the
		// removal would erase entirely are deactivated instead.
		if !removalDate.After(current.StartDate) {
			return nil, domain.ErrInvalidDateRange
		}

		log := &domain.AssignmentLog{
			Action:      domain.LogEnded,
			StationID:   stationID,
			EmployeeID:  &current.EmployeeID,
			PerformedBy: performedBy,
			Note:        fmt.Sprintf("ended assignment at %s effective %s", station.Name, removalDate.Format(time.DateOnly)),
		}
		if err := s.store.CloseAssignmentWithLog(current, removalDate.AddDate(0, 0, -1), log); err != nil {
			return nil, err
		}
		return current, nil

	case RemovalDeactivate:
		log := &domain.AssignmentLog{
			Action:      domain.LogDeactivated,
			StationID:   stationID,
			EmployeeID:  &current.EmployeeID,
			PerformedBy: performedBy,
			Note:        fmt.Sprintf("deactivated assignment at %s", station.Name),
		}
		if err := s.store.DeactivateAssignmentWithLog(current, log); err != nil {
			return nil, err
		}
		return current, nil

	default:
		return nil, fmt.Errorf("unknown removal kind %q", kind)
	}
}

func (s *Scheduler) ToggleStation(stationID int64, makeActive bool, performedBy string) (*domain.Station, error) {
	station, err := s.store.GetStationByID(stationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}

	action := domain.LogDeactivated
	verb := "deactivated"
	if makeActive {
		action = domain.LogActivated
		verb = "activated"
	}

	log := &domain.AssignmentLog{
		Action:      action,
		StationID:   stationID,
		PerformedBy: performedBy,
		Note:        fmt.Sprintf("%s station %s", verb, station.Name),
	}
	if err := s.store.SetStationActive(station, makeActive, log); err != nil {
		return nil, err
	}

	return station, nil
}

func (s *Scheduler) stationOccupied(stationID, excludeID int64, start time.Time, end *time.Time) (bool, error) {
	schedules, err := s.store.GetActiveAssignmentsByStation(stationID)
	if err != nil {
		return false, err
	}

	for _, schedule := range schedules {
		if schedule.ID == excludeID {
			continue
		}
		if schedule.Overlaps(start, end) {
			return true, nil
		}
	}

	return false, nil
}
