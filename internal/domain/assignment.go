package domain

import "time"

type AssignmentKind string

const (
	AssignmentPermanent AssignmentKind = "permanent"
	AssignmentTemporary AssignmentKind = "temporary"
)

type AssignmentSchedule struct {
	ID         int64          `json:"id"`
	StationID  int64          `json:"stationID"`
	EmployeeID int64          `json:"employeeID"`
	StartDate  time.Time      `json:"startDate"`
	EndDate    *time.Time     `json:"endDate"`
	Kind       AssignmentKind `json:"kind"`
	ShiftStart string         `json:"shiftStart"`
	ShiftEnd   string         `json:"shiftEnd"`
	IsActive   bool           `json:"isActive"`
	CreatedBy  string         `json:"createdBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	Version    int32          `json:"-"`
}

// Covers reports whether the schedule's date interval contains the given day.
// A nil end date means the assignment is open-ended.
func (s *AssignmentSchedule) Covers(date time.Time) bool {
	if date.Before(s.StartDate) {
		return false
	}
	return s.EndDate == nil || !date.After(*s.EndDate)
}

// Overlaps reports whether the schedule's interval intersects [start, end].
// A nil end on either side is treated as extending forever.
func (s *AssignmentSchedule) Overlaps(start time.Time, end *time.Time) bool {
	if s.EndDate != nil && start.After(*s.EndDate) {
		return false
	}
	if end != nil && s.StartDate.After(*end) {
		return false
	}
	return true
}
