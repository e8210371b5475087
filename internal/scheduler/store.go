package scheduler

import (
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

// Store is the slice of the assignment store the scheduler needs. It is
// implemented by *repository.Repository; tests substitute an in-memory fake.
//
// The *WithLog mutators are transactional: the schedule mutation, the in-store
// overlap re-check and the audit entries either all apply or none do.
type Store interface {
	GetEmployeeByID(id int64) (*domain.Employee, error)
	GetAllEmployees() ([]*domain.Employee, error)
	GetStationByID(id int64) (*domain.Station, error)
	GetAllStations() ([]*domain.Station, error)

	GetActiveAssignmentsByEmployee(employeeID int64) ([]*domain.AssignmentSchedule, error)
	GetActiveAssignmentsByStation(stationID int64) ([]*domain.AssignmentSchedule, error)
	GetCurrentAssignmentByStation(stationID int64, date time.Time) (*domain.AssignmentSchedule, error)
	GetActiveAssignmentsCoveringDate(date time.Time) ([]*domain.AssignmentSchedule, error)

	CreateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error
	ReassignWithLogs(prev *domain.AssignmentSchedule, prevEndDate time.Time, next *domain.AssignmentSchedule, logs []*domain.AssignmentLog) error
	CloseAssignmentWithLog(s *domain.AssignmentSchedule, endDate time.Time, log *domain.AssignmentLog) error
	DeactivateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error
	SetStationActive(station *domain.Station, makeActive bool, log *domain.AssignmentLog) error
}
