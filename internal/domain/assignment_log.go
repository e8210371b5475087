package domain

import "time"

type LogAction string

const (
	LogCreated     LogAction = "created"
	LogReassigned  LogAction = "reassigned"
	LogEnded       LogAction = "ended"
	LogDeactivated LogAction = "deactivated"
	LogActivated   LogAction = "activated"
)

type AssignmentLog struct {
	ID          int64     `json:"id"`
	Action      LogAction `json:"action"`
	StationID   int64     `json:"stationID"`
	EmployeeID  *int64    `json:"employeeID"`
	PerformedBy string    `json:"performedBy"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
}
