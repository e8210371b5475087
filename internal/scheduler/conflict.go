package scheduler

import (
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

// FindConflict reports whether the employee already holds an active
// assignment at a station other than excludeStationID covering onDate.
// It returns (nil, nil) when the employee is free. Pass excludeStationID = 0
// to consider every station.
func (s *Scheduler) FindConflict(employeeID int64, onDate time.Time, excludeStationID int64) (*domain.ConflictError, error) {
	schedules, err := s.store.GetActiveAssignmentsByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	for _, schedule := range schedules {
		if schedule.StationID == excludeStationID {
			continue
		}
		if schedule.Covers(onDate) {
			return s.describeConflict(employeeID, schedule)
		}
	}

	return nil, nil
}

// findRangeConflict is the stricter variant used by Assign and Reassign: any
// active assignment at another station intersecting [start, end] counts, not
// just one covering the start date.
func (s *Scheduler) findRangeConflict(employeeID, excludeStationID int64, start time.Time, end *time.Time) (*domain.ConflictError, error) {
	schedules, err := s.store.GetActiveAssignmentsByEmployee(employeeID)
	if err != nil {
		return nil, err
	}

	for _, schedule := range schedules {
		if schedule.StationID == excludeStationID {
			continue
		}
		if schedule.Overlaps(start, end) {
			return s.describeConflict(employeeID, schedule)
		}
	}

	return nil, nil
}

func (s *Scheduler) describeConflict(employeeID int64, schedule *domain.AssignmentSchedule) (*domain.ConflictError, error) {
	station, err := s.store.GetStationByID(schedule.StationID)
	if err != nil {
		return nil, err
	}

	return &domain.ConflictError{
		EmployeeID:  employeeID,
		StationID:   station.ID,
		StationName: station.Name,
		ShiftStart:  schedule.ShiftStart,
		ShiftEnd:    schedule.ShiftEnd,
	}, nil
}
