package scheduler

import (
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

type BoardOccupant struct {
	Employee   *domain.Employee           `json:"employee"`
	Assignment *domain.AssignmentSchedule `json:"assignment"`
}

type BoardEntry struct {
	Station  *domain.Station `json:"station"`
	Occupant *BoardOccupant  `json:"occupant"`
}

// ResolveForDate derives the "who is working where" board for a date: one
// entry per station, occupant nil when nobody's interval covers the date.
// Inactive stations always resolve as unoccupied, whatever schedule rows
// exist underneath; callers decide whether to display them at all.
func (s *Scheduler) ResolveForDate(date time.Time) ([]*BoardEntry, error) {
	stations, err := s.store.GetAllStations()
	if err != nil {
		return nil, err
	}

	schedules, err := s.store.GetActiveAssignmentsCoveringDate(date)
	if err != nil {
		return nil, err
	}

	employees, err := s.store.GetAllEmployees()
	if err != nil {
		return nil, err
	}

	byStation := make(map[int64]*domain.AssignmentSchedule, len(schedules))
	for _, schedule := range schedules {
		byStation[schedule.StationID] = schedule
	}
	byEmployee := make(map[int64]*domain.Employee, len(employees))
	for _, employee := range employees {
		byEmployee[employee.ID] = employee
	}

	entries := make([]*BoardEntry, 0, len(stations))
	for _, station := range stations {
		entry := &BoardEntry{Station: station}

		if station.IsActive {
			if schedule, ok := byStation[station.ID]; ok {
				entry.Occupant = &BoardOccupant{
					Employee:   byEmployee[schedule.EmployeeID],
					Assignment: schedule,
				}
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
