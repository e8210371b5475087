package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

func TestResolveForDate(t *testing.T) {
	store := newFakeStore()
	store.addEmployee(5, "Maria Santos", true)
	store.addEmployee(6, "Jose Cruz", true)
	store.addStation(1, "Triage Station 1", true)
	store.addStation(2, "Pharmacy Station 1", true)
	store.addStation(3, "Billing Station 1", true)
	sched := New(store)

	_, err := sched.Assign(assignParams(5, 1, date(2024, 1, 1)))
	require.NoError(t, err)

	bounded := assignParams(6, 2, date(2024, 1, 1))
	bounded.Kind = domain.AssignmentTemporary
	bounded.EndDate = datePtr(2024, 1, 20)
	_, err = sched.Assign(bounded)
	require.NoError(t, err)

	entries, err := sched.ResolveForDate(date(2024, 1, 15))
	require.NoError(t, err)
	require.Len(t, entries, 3, "one entry per station, staffed or not")

	occupants := make(map[int64]*BoardOccupant)
	for _, entry := range entries {
		occupants[entry.Station.ID] = entry.Occupant
	}

	require.NotNil(t, occupants[1])
	assert.Equal(t, "Maria Santos", occupants[1].Employee.FullName)
	require.NotNil(t, occupants[2])
	assert.Equal(t, "Jose Cruz", occupants[2].Employee.FullName)
	assert.Nil(t, occupants[3], "unstaffed station resolves as unassigned, not an error")

	// After the bounded assignment expires only station 1 is staffed.
	entries, err = sched.ResolveForDate(date(2024, 1, 21))
	require.NoError(t, err)
	staffed := 0
	for _, entry := range entries {
		if entry.Occupant != nil {
			staffed++
			assert.Equal(t, int64(1), entry.Station.ID)
		}
	}
	assert.Equal(t, 1, staffed)
}

func TestResolveForDate_EmptyFacility(t *testing.T) {
	store := newFakeStore()
	sched := New(store)

	entries, err := sched.ResolveForDate(date(2024, 1, 15))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
