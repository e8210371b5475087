package domain

import "time"

type StationType string

const (
	StationCheckIn      StationType = "check_in"
	StationTriage       StationType = "triage"
	StationConsultation StationType = "consultation"
	StationLaboratory   StationType = "laboratory"
	StationPharmacy     StationType = "pharmacy"
	StationBilling      StationType = "billing"
	StationDocument     StationType = "document"
)

type Station struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Type           StationType `json:"type"`
	SequenceNumber int32       `json:"sequenceNumber"`
	ServiceID      int64       `json:"serviceID"`
	IsActive       bool        `json:"isActive"`
	CreatedAt      time.Time   `json:"createdAt"`
	Version        int32       `json:"-"`
}
