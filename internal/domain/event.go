package domain

// AssignmentEventMessage is published to the assignment_events queue after
// every committed mutation. cmd/notify consumes it to mail the affected
// employee; dashboards consume it to refresh their boards.
type AssignmentEventMessage struct {
	Action        LogAction `json:"action"`
	StationName   string    `json:"stationName"`
	EmployeeName  string    `json:"employeeName"`
	EmployeeEmail string    `json:"employeeEmail"`
	EffectiveDate string    `json:"effectiveDate"`
	ShiftStart    string    `json:"shiftStart"`
	ShiftEnd      string    `json:"shiftEnd"`
	Note          string    `json:"note"`
}
