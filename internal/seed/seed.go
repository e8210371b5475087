package seed

import (
	"log/slog"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
	"github.com/clinicops/station-scheduler/backend/internal/repository"
	"github.com/clinicops/station-scheduler/backend/internal/scheduler"
	"github.com/clinicops/station-scheduler/backend/internal/utils"
)

// SeedSampleBoard creates n stations and n employees and staffs every
// station through the real scheduler, so the generated board satisfies the
// non-overlap invariants and leaves a full audit trail behind.
func SeedSampleBoard(r *repository.Repository, n int, emailDomain string) {
	sched := scheduler.New(r)
	today := time.Now().Truncate(24 * time.Hour)

	stations := make([]*domain.Station, 0, n)
	for i := 0; i < n; i++ {
		station := utils.GenerateRandomStation(int32(i + 1))
		if err := r.CreateStation(station); err != nil {
			slog.Error("failed to insert station", slog.String("error", err.Error()))
			continue
		}
		stations = append(stations, station)
	}

	employees := make([]*domain.Employee, 0, n)
	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(emailDomain)
		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("failed to insert employee", slog.String("error", err.Error()))
			continue
		}
		employees = append(employees, employee)
	}

	count := 0
	for i, station := range stations {
		if i >= len(employees) {
			break
		}

		shiftStart, shiftEnd := utils.GenerateRandomShift()
		params := scheduler.AssignParams{
			EmployeeID:  employees[i].ID,
			StationID:   station.ID,
			StartDate:   today,
			Kind:        domain.AssignmentPermanent,
			ShiftStart:  shiftStart,
			ShiftEnd:    shiftEnd,
			PerformedBy: "seed",
		}

		// Every other assignment is a bounded two-week cover.
		if i%2 == 1 {
			end := today.AddDate(0, 0, 13)
			params.Kind = domain.AssignmentTemporary
			params.EndDate = &end
		}

		if _, err := sched.Assign(params); err != nil {
			slog.Error("failed to assign employee", slog.String("error", err.Error()))
			continue
		}
		count++
	}

	slog.Info("sample board seeded", slog.Int("stations", len(stations)), slog.Int("employees", len(employees)), slog.Int("assignments", count))
}
