package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func TestAssignmentScheduleCovers(t *testing.T) {
	bounded := &AssignmentSchedule{StartDate: day(2024, 1, 10), EndDate: dayPtr(2024, 1, 20)}
	openEnded := &AssignmentSchedule{StartDate: day(2024, 1, 10)}

	tests := []struct {
		name     string
		schedule *AssignmentSchedule
		date     time.Time
		want     bool
	}{
		{"before start", bounded, day(2024, 1, 9), false},
		{"start inclusive", bounded, day(2024, 1, 10), true},
		{"inside", bounded, day(2024, 1, 15), true},
		{"end inclusive", bounded, day(2024, 1, 20), true},
		{"after end", bounded, day(2024, 1, 21), false},
		{"open-ended far future", openEnded, day(2030, 6, 1), true},
		{"open-ended before start", openEnded, day(2024, 1, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Covers(tt.date))
		})
	}
}

func TestAssignmentScheduleOverlaps(t *testing.T) {
	bounded := &AssignmentSchedule{StartDate: day(2024, 1, 10), EndDate: dayPtr(2024, 1, 20)}
	openEnded := &AssignmentSchedule{StartDate: day(2024, 1, 10)}

	tests := []struct {
		name     string
		schedule *AssignmentSchedule
		start    time.Time
		end      *time.Time
		want     bool
	}{
		{"disjoint before", bounded, day(2024, 1, 1), dayPtr(2024, 1, 9), false},
		{"disjoint after", bounded, day(2024, 1, 21), nil, false},
		{"touching at start", bounded, day(2024, 1, 1), dayPtr(2024, 1, 10), true},
		{"touching at end", bounded, day(2024, 1, 20), dayPtr(2024, 1, 25), true},
		{"contained", bounded, day(2024, 1, 12), dayPtr(2024, 1, 14), true},
		{"containing", bounded, day(2024, 1, 1), dayPtr(2024, 2, 1), true},
		{"open query range", bounded, day(2024, 1, 15), nil, true},
		{"both open-ended", openEnded, day(2030, 1, 1), nil, true},
		{"open row, bounded query before", openEnded, day(2024, 1, 1), dayPtr(2024, 1, 9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schedule.Overlaps(tt.start, tt.end))
		})
	}
}
