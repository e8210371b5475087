package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func assignParams(employeeID, stationID int64, start time.Time) AssignParams {
	return AssignParams{
		EmployeeID:  employeeID,
		StationID:   stationID,
		StartDate:   start,
		Kind:        domain.AssignmentPermanent,
		ShiftStart:  "08:00:00",
		ShiftEnd:    "17:00:00",
		PerformedBy: "admin",
	}
}

func TestAssign_Success(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	schedule, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	assert.True(t, schedule.IsActive)
	assert.Nil(t, schedule.EndDate)
	assert.Equal(t, int64(5), schedule.EmployeeID)
	assert.Equal(t, int64(1), schedule.StationID)

	require.Len(t, store.logs, 1)
	assert.Equal(t, domain.LogCreated, store.logs[0].Action)
	require.NotNil(t, store.logs[0].EmployeeID)
	assert.Equal(t, int64(5), *store.logs[0].EmployeeID)
	assert.Equal(t, "admin", store.logs[0].PerformedBy)
}

func TestAssign_EmployeeConflict(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	store.addStation(2, "Pharmacy Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	// Employee 5 already holds station 1 open-ended, so a later start at
	// another station overlaps.
	_, err = sched.Assign(assignParams(5, 2, date(2024, 1, 10)))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.StationID)
	assert.Equal(t, "Triage Station 1", conflict.StationName)
	assert.Equal(t, "08:00:00", conflict.ShiftStart)

	assert.Len(t, store.schedules, 1, "failed assign must not create a row")
	assert.Len(t, store.logs, 1, "failed assign must not log")
}

func TestAssign_StationOccupied(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(6, "Jose Cruz", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	_, err = sched.Assign(assignParams(6, 1, date(2024, 2, 1)))
	assert.ErrorIs(t, err, domain.ErrStationOccupied)
	assert.Len(t, store.schedules, 1)
	assert.Len(t, store.logs, 1)
}

func TestAssign_SecondIdenticalCallFails(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	params := assignParams(5, 1, date(2024, 1, 1))
	_, err := sched.Assign(params)
	require.NoError(t, err)

	_, err = sched.Assign(params)
	require.Error(t, err)
	assert.Len(t, store.schedules, 1, "duplicate assign must never create a second row")
}

func TestAssign_BoundedRangesDoNotConflict(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	store.addStation(2, "Pharmacy Station 1", true)
	sched := New(store)

	first := assignParams(5, 1, date(2024, 1, 1))
	first.Kind = domain.AssignmentTemporary
	first.EndDate = datePtr(2024, 1, 31)
	_, err := sched.Assign(first)
	require.NoError(t, err)

	// A posting starting after the bounded one ends is fine.
	second := assignParams(5, 2, date(2024, 2, 1))
	_, err = sched.Assign(second)
	assert.NoError(t, err)
}

func TestAssign_InvalidDateRange(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	permanent := assignParams(5, 1, date(2024, 1, 10))
	permanent.EndDate = datePtr(2024, 2, 1)
	_, err := sched.Assign(permanent)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange, "permanent assignments must not carry an end date")

	backwards := assignParams(5, 1, date(2024, 1, 10))
	backwards.Kind = domain.AssignmentTemporary
	backwards.EndDate = datePtr(2024, 1, 5)
	_, err = sched.Assign(backwards)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	assert.Empty(t, store.logs)
}

func TestAssign_LookupFailures(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(6, "Jose Cruz", false)
	store.addStation(1, "Triage Station 1", true)
	store.addStation(2, "Pharmacy Station 1", false)
	sched := New(store)

	_, err := sched.Assign(assignParams(99, 1, date(2024, 1, 1)))
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = sched.Assign(assignParams(5, 99, date(2024, 1, 1)))
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	_, err = sched.Assign(assignParams(6, 1, date(2024, 1, 1)))
	assert.ErrorIs(t, err, domain.ErrEmployeeInactive)

	_, err = sched.Assign(assignParams(5, 2, date(2024, 1, 1)))
	assert.ErrorIs(t, err, domain.ErrStationInactive)
}

func TestReassign_Success(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(7, "Anna Reyes", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	result, err := sched.Reassign(1, 7, date(2024, 1, 10), "admin")
	require.NoError(t, err)

	require.NotNil(t, result.Closed.EndDate)
	assert.Equal(t, date(2024, 1, 9), *result.Closed.EndDate)
	assert.Equal(t, date(2024, 1, 10), result.Created.StartDate)
	assert.Equal(t, int64(7), result.Created.EmployeeID)
	assert.Equal(t, "08:00:00", result.Created.ShiftStart, "shift hours copied from the closed row")
	assert.Equal(t, domain.AssignmentPermanent, result.Created.Kind)

	require.Len(t, store.logs, 3) // created + ended + reassigned
	assert.Equal(t, domain.LogEnded, store.logs[1].Action)
	assert.Equal(t, domain.LogReassigned, store.logs[2].Action)

	// The board flips exactly at the reassignment date.
	before, err := sched.ResolveForDate(date(2024, 1, 9))
	require.NoError(t, err)
	require.NotNil(t, before[0].Occupant)
	assert.Equal(t, int64(5), before[0].Occupant.Employee.ID)

	after, err := sched.ResolveForDate(date(2024, 1, 10))
	require.NoError(t, err)
	require.NotNil(t, after[0].Occupant)
	assert.Equal(t, int64(7), after[0].Occupant.Employee.ID)

	assert.Equal(t, 1, store.activeRowsFor(5, date(2024, 1, 9)))
	assert.Equal(t, 0, store.activeRowsFor(5, date(2024, 1, 10)))
}

func TestReassign_NoCurrentAssignment(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(7, "Anna Reyes", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Reassign(1, 7, date(2024, 1, 10), "admin")
	assert.ErrorIs(t, err, domain.ErrNoCurrentAssignment)
	assert.Empty(t, store.logs)
}

func TestReassign_ConflictReportedNotCascaded(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(7, "Anna Reyes", true)
	store.addStation(1, "Triage Station 1", true)
	store.addStation(2, "Pharmacy Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)
	params := assignParams(7, 2, date(2024, 1, 1))
	params.ShiftStart, params.ShiftEnd = "09:00:00", "18:00:00"
	_, err = sched.Assign(params)
	require.NoError(t, err)

	// Employee 7 is busy at station 2, so station 1 cannot take them; the
	// conflict names station 2 so the operator can free them up first.
	_, err = sched.Reassign(1, 7, date(2024, 1, 10), "admin")

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.StationID)
	assert.Equal(t, "09:00:00", conflict.ShiftStart)

	// Nothing changed: both original rows intact, no extra logs.
	assert.Len(t, store.schedules, 2)
	assert.Len(t, store.logs, 2)
	current, err := store.GetCurrentAssignmentByStation(1, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Nil(t, current.EndDate)
	assert.Equal(t, int64(5), current.EmployeeID)
}

func TestReassign_OnStartDateRejected(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(7, "Anna Reyes", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 10)))
	require.NoError(t, err)

	// Closing the current row at reassignDate-1 would end it before it
	// started.
	_, err = sched.Reassign(1, 7, date(2024, 1, 10), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestReassign_PersistenceFailureIsAtomic(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(7, "Anna Reyes", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	store.failMutations = true
	_, err = sched.Reassign(1, 7, date(2024, 1, 10), "admin")
	require.Error(t, err)

	store.failMutations = false
	current, err := store.GetCurrentAssignmentByStation(1, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Nil(t, current.EndDate, "failed reassign must not close the old row")
	assert.Equal(t, int64(5), current.EmployeeID)
	assert.Len(t, store.schedules, 1)
	assert.Len(t, store.logs, 1)
}

func TestRemove_EndAssignment(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	schedule, err := sched.Remove(1, date(2024, 3, 1), RemovalEndAssignment, "admin")
	require.NoError(t, err)

	require.NotNil(t, schedule.EndDate)
	assert.Equal(t, date(2024, 2, 29), *schedule.EndDate)
	assert.True(t, schedule.IsActive, "ending keeps the row as history")
	assert.Len(t, store.schedules, 1, "remove never deletes rows")

	require.Len(t, store.logs, 2)
	assert.Equal(t, domain.LogEnded, store.logs[1].Action)

	// Still on the board the day before, gone on the removal date.
	assert.Equal(t, 1, store.activeRowsFor(5, date(2024, 2, 29)))
	assert.Equal(t, 0, store.activeRowsFor(5, date(2024, 3, 1)))
}

func TestRemove_Deactivate(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	schedule, err := sched.Remove(1, date(2024, 3, 1), RemovalDeactivate, "admin")
	require.NoError(t, err)

	assert.False(t, schedule.IsActive)
	assert.Nil(t, schedule.EndDate, "deactivation leaves the dates untouched")

	require.Len(t, store.logs, 2)
	assert.Equal(t, domain.LogDeactivated, store.logs[1].Action)

	entries, err := sched.ResolveForDate(date(2024, 3, 1))
	require.NoError(t, err)
	assert.Nil(t, entries[0].Occupant)
}

func TestRemove_Failures(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(1, "Triage Station 1", true)
	sched := New(store)

	_, err := sched.Remove(1, date(2024, 1, 10), RemovalEndAssignment, "admin")
	assert.ErrorIs(t, err, domain.ErrNoCurrentAssignment)

	_, err = sched.Assign(assignParams(5, 1, date(2024, 1, 10)))
	require.NoError(t, err)

	// Ending on or before the start date would erase the row's interval.
	_, err = sched.Remove(1, date(2024, 1, 10), RemovalEndAssignment, "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestToggleStation(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addStation(3, "Billing Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 3, date(2024, 1, 1)))
	require.NoError(t, err)

	station, err := sched.ToggleStation(3, false, "admin")
	require.NoError(t, err)
	assert.False(t, station.IsActive)

	// The schedule row underneath stays active, but the board shows the
	// station as unoccupied.
	assert.Equal(t, 1, store.activeRowsFor(5, date(2024, 1, 15)))
	entries, err := sched.ResolveForDate(date(2024, 1, 15))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Station.IsActive)
	assert.Nil(t, entries[0].Occupant)

	require.Len(t, store.logs, 2)
	assert.Equal(t, domain.LogDeactivated, store.logs[1].Action)
	assert.Nil(t, store.logs[1].EmployeeID, "station toggles log without an employee")

	station, err = sched.ToggleStation(3, true, "admin")
	require.NoError(t, err)
	assert.True(t, station.IsActive)
	assert.Equal(t, domain.LogActivated, store.logs[2].Action)
}
