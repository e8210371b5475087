package scheduler

import (
	"database/sql"
	"errors"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

var errStoreDown = errors.New("store down")

// fakeStore is an in-memory Store used by the scheduler tests. Mutators
// mirror the real repository's all-or-nothing behavior: with failMutations
// set they return an error without touching any state.
type fakeStore struct {
	employees map[int64]*domain.Employee
	stations  map[int64]*domain.Station
	schedules map[int64]*domain.AssignmentSchedule
	logs      []*domain.AssignmentLog

	nextID        int64
	failMutations bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: make(map[int64]*domain.Employee),
		stations:  make(map[int64]*domain.Station),
		schedules: make(map[int64]*domain.AssignmentSchedule),
	}
}

func (f *fakeStore) addEmployee(id int64, name string, active bool) *domain.Employee {
	e := &domain.Employee{ID: id, FullName: name, Email: name + "@clinic.example.com", Role: domain.RoleNurse, IsActive: active}
	f.employees[id] = e
	return e
}

func (f *fakeStore) addStation(id int64, name string, active bool) *domain.Station {
	s := &domain.Station{ID: id, Name: name, Type: domain.StationTriage, SequenceNumber: int32(id), IsActive: active}
	f.stations[id] = s
	return s
}

func copySchedule(s *domain.AssignmentSchedule) *domain.AssignmentSchedule {
	dup := *s
	if s.EndDate != nil {
		end := *s.EndDate
		dup.EndDate = &end
	}
	return &dup
}

func (f *fakeStore) GetEmployeeByID(id int64) (*domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	dup := *e
	return &dup, nil
}

func (f *fakeStore) GetAllEmployees() ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		dup := *e
		employees = append(employees, &dup)
	}
	return employees, nil
}

func (f *fakeStore) GetStationByID(id int64) (*domain.Station, error) {
	s, ok := f.stations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	dup := *s
	return &dup, nil
}

func (f *fakeStore) GetAllStations() ([]*domain.Station, error) {
	stations := make([]*domain.Station, 0, len(f.stations))
	for _, s := range f.stations {
		dup := *s
		stations = append(stations, &dup)
	}
	return stations, nil
}

func (f *fakeStore) GetActiveAssignmentsByEmployee(employeeID int64) ([]*domain.AssignmentSchedule, error) {
	schedules := make([]*domain.AssignmentSchedule, 0)
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID && s.IsActive {
			schedules = append(schedules, copySchedule(s))
		}
	}
	return schedules, nil
}

func (f *fakeStore) GetActiveAssignmentsByStation(stationID int64) ([]*domain.AssignmentSchedule, error) {
	schedules := make([]*domain.AssignmentSchedule, 0)
	for _, s := range f.schedules {
		if s.StationID == stationID && s.IsActive {
			schedules = append(schedules, copySchedule(s))
		}
	}
	return schedules, nil
}

func (f *fakeStore) GetCurrentAssignmentByStation(stationID int64, date time.Time) (*domain.AssignmentSchedule, error) {
	for _, s := range f.schedules {
		if s.StationID == stationID && s.IsActive && s.Covers(date) {
			return copySchedule(s), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetActiveAssignmentsCoveringDate(date time.Time) ([]*domain.AssignmentSchedule, error) {
	schedules := make([]*domain.AssignmentSchedule, 0)
	for _, s := range f.schedules {
		if s.IsActive && s.Covers(date) {
			schedules = append(schedules, copySchedule(s))
		}
	}
	return schedules, nil
}

func (f *fakeStore) CreateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error {
	if f.failMutations {
		return errStoreDown
	}

	f.nextID++
	s.ID = f.nextID
	s.IsActive = true
	s.CreatedAt = time.Now()
	f.schedules[s.ID] = copySchedule(s)
	f.appendLog(log)
	return nil
}

func (f *fakeStore) ReassignWithLogs(prev *domain.AssignmentSchedule, prevEndDate time.Time, next *domain.AssignmentSchedule, logs []*domain.AssignmentLog) error {
	if f.failMutations {
		return errStoreDown
	}

	stored, ok := f.schedules[prev.ID]
	if !ok {
		return sql.ErrNoRows
	}
	end := prevEndDate
	stored.EndDate = &end
	prev.EndDate = &end

	f.nextID++
	next.ID = f.nextID
	next.IsActive = true
	next.CreatedAt = time.Now()
	f.schedules[next.ID] = copySchedule(next)

	for _, log := range logs {
		f.appendLog(log)
	}
	return nil
}

func (f *fakeStore) CloseAssignmentWithLog(s *domain.AssignmentSchedule, endDate time.Time, log *domain.AssignmentLog) error {
	if f.failMutations {
		return errStoreDown
	}

	stored, ok := f.schedules[s.ID]
	if !ok {
		return sql.ErrNoRows
	}
	end := endDate
	stored.EndDate = &end
	s.EndDate = &end
	f.appendLog(log)
	return nil
}

func (f *fakeStore) DeactivateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error {
	if f.failMutations {
		return errStoreDown
	}

	stored, ok := f.schedules[s.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.IsActive = false
	s.IsActive = false
	f.appendLog(log)
	return nil
}

func (f *fakeStore) SetStationActive(station *domain.Station, makeActive bool, log *domain.AssignmentLog) error {
	if f.failMutations {
		return errStoreDown
	}

	stored, ok := f.stations[station.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.IsActive = makeActive
	station.IsActive = makeActive
	f.appendLog(log)
	return nil
}

func (f *fakeStore) appendLog(log *domain.AssignmentLog) {
	f.nextID++
	log.ID = f.nextID
	log.CreatedAt = time.Now()
	f.logs = append(f.logs, log)
}

// activeRowsFor counts active schedule rows for an employee covering a date.
func (f *fakeStore) activeRowsFor(employeeID int64, date time.Time) int {
	count := 0
	for _, s := range f.schedules {
		if s.EmployeeID == employeeID && s.IsActive && s.Covers(date) {
			count++
		}
	}
	return count
}
