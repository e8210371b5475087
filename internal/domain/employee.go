package domain

import "time"

type EmployeeRole string

const (
	RoleRecordsOfficer       EmployeeRole = "records_officer"
	RoleNurse                EmployeeRole = "nurse"
	RoleDoctor               EmployeeRole = "doctor"
	RoleCashier              EmployeeRole = "cashier"
	RoleLaboratoryTechnician EmployeeRole = "laboratory_technician"
	RolePharmacist           EmployeeRole = "pharmacist"
)

type Employee struct {
	ID        int64        `json:"id"`
	FullName  string       `json:"fullName"`
	Email     string       `json:"email"`
	Role      EmployeeRole `json:"role"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
	Version   int32        `json:"-"`
}
