package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrStationNotFound     = errors.New("station not found")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrStationInactive     = errors.New("station is inactive")
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrNoCurrentAssignment = errors.New("station has no current assignment")

	ErrEmployeeAlreadyAssigned = errors.New("employee already has an overlapping assignment")
	ErrStationOccupied         = errors.New("station already has an assignment in the requested range")
)

// ConflictError reports that an employee already holds an overlapping
// assignment at another station. It carries enough detail for callers to
// explain the rejection to an operator.
type ConflictError struct {
	EmployeeID  int64  `json:"employeeID"`
	StationID   int64  `json:"stationID"`
	StationName string `json:"stationName"`
	ShiftStart  string `json:"shiftStart"`
	ShiftEnd    string `json:"shiftEnd"`
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee %d is already assigned to %s (%s-%s)", e.EmployeeID, e.StationName, e.ShiftStart, e.ShiftEnd)
}
