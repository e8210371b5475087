package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

var firstNames = []string{
	"Maria", "Jose", "Anna", "John", "Carmen", "Paolo", "Grace", "Mark",
	"Liza", "Ramon", "Teresa", "Victor", "Elena", "Daniel", "Sofia", "Miguel",
	"Clara", "Andres", "Bianca", "Felipe",
}

var lastNames = []string{
	"Santos", "Reyes", "Cruz", "Garcia", "Mendoza", "Torres", "Flores",
	"Ramos", "Gonzales", "Bautista", "Villanueva", "Aquino", "Navarro",
	"Castillo", "Domingo", "Salazar",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var roles = []domain.EmployeeRole{
	domain.RoleRecordsOfficer,
	domain.RoleNurse,
	domain.RoleDoctor,
	domain.RoleCashier,
	domain.RoleLaboratoryTechnician,
	domain.RolePharmacist,
}

func GenerateRandomRole() domain.EmployeeRole {
	return roles[rand.Intn(len(roles))]
}

func GenerateRandomEmployee(emailDomain string) *domain.Employee {
	fullName := GenerateRandomFullName()
	local := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	return &domain.Employee{
		FullName: fullName,
		Email:    fmt.Sprintf("%s%d@%s", local, rand.Intn(1000), emailDomain),
		Role:     GenerateRandomRole(),
	}
}

var stationTypes = []domain.StationType{
	domain.StationCheckIn,
	domain.StationTriage,
	domain.StationConsultation,
	domain.StationLaboratory,
	domain.StationPharmacy,
	domain.StationBilling,
	domain.StationDocument,
}

var stationTypeLabels = map[domain.StationType]string{
	domain.StationCheckIn:      "Check-In",
	domain.StationTriage:       "Triage",
	domain.StationConsultation: "Consultation",
	domain.StationLaboratory:   "Laboratory",
	domain.StationPharmacy:     "Pharmacy",
	domain.StationBilling:      "Billing",
	domain.StationDocument:     "Document",
}

// GenerateRandomStation numbers the station within its type; callers keep a
// running count per type so names stay unique.
func GenerateRandomStation(sequence int32) *domain.Station {
	stationType := stationTypes[rand.Intn(len(stationTypes))]

	return &domain.Station{
		Name:           fmt.Sprintf("%s Station %d", stationTypeLabels[stationType], sequence),
		Type:           stationType,
		SequenceNumber: sequence,
		ServiceID:      int64(rand.Intn(5) + 1),
	}
}

// Typical clinic shift windows.
var shiftWindows = [][2]string{
	{"07:00:00", "15:00:00"},
	{"08:00:00", "17:00:00"},
	{"09:00:00", "18:00:00"},
	{"14:00:00", "22:00:00"},
}

func GenerateRandomShift() (string, string) {
	window := shiftWindows[rand.Intn(len(shiftWindows))]
	return window[0], window[1]
}
