package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

func (r *Repository) GetActiveAssignmentsByEmployee(employeeID int64) ([]*domain.AssignmentSchedule, error) {
	query := `
		SELECT id, station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, is_active, created_by, created_at, version
		FROM assignment_schedules
		WHERE employee_id = $1 AND is_active = TRUE
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}

func (r *Repository) GetActiveAssignmentsByStation(stationID int64) ([]*domain.AssignmentSchedule, error) {
	query := `
		SELECT id, station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, is_active, created_by, created_at, version
		FROM assignment_schedules
		WHERE station_id = $1 AND is_active = TRUE
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}

// GetCurrentAssignmentByStation returns the active schedule row covering the
// given date for the station, or sql.ErrNoRows when the station is unmanned.
func (r *Repository) GetCurrentAssignmentByStation(stationID int64, date time.Time) (*domain.AssignmentSchedule, error) {
	query := `
		SELECT id, station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, is_active, created_by, created_at, version
		FROM assignment_schedules
		WHERE station_id = $1
			AND is_active = TRUE
			AND start_date <= $2
			AND (end_date IS NULL OR end_date >= $2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s := &domain.AssignmentSchedule{}
	dst := []any{&s.ID, &s.StationID, &s.EmployeeID, &s.StartDate, &s.EndDate, &s.Kind, &s.ShiftStart, &s.ShiftEnd, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, stationID, date).Scan(dst...); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) GetActiveAssignmentsCoveringDate(date time.Time) ([]*domain.AssignmentSchedule, error) {
	query := `
		SELECT id, station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, is_active, created_by, created_at, version
		FROM assignment_schedules
		WHERE is_active = TRUE
			AND start_date <= $1
			AND (end_date IS NULL OR end_date >= $1)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAssignmentRows(rows)
}

// CreateAssignmentWithLog inserts a new schedule row and its audit entry in
// one transaction. The overlap checks run again inside the transaction so
// that two concurrent callers cannot both slip past the scheduler's
// pre-validation and double-book an employee or a station.
func (r *Repository) CreateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := checkEmployeeOverlap(ctx, tx, s.EmployeeID, s.StationID, s.StartDate, s.EndDate); err != nil {
		return err
	}
	if err := checkStationOverlap(ctx, tx, s.StationID, 0, s.StartDate, s.EndDate); err != nil {
		return err
	}

	query := `
		INSERT INTO assignment_schedules (station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`
	args := []any{s.StationID, s.EmployeeID, s.StartDate, s.EndDate, s.Kind, s.ShiftStart, s.ShiftEnd, s.CreatedBy}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.Version); err != nil {
		return err
	}

	if err := insertLog(ctx, tx, log); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// ReassignWithLogs closes the outgoing assignment, inserts the incoming one
// and writes both audit entries as a single unit of work. Partial application
// is not an allowed outcome.
func (r *Repository) ReassignWithLogs(prev *domain.AssignmentSchedule, prevEndDate time.Time, next *domain.AssignmentSchedule, logs []*domain.AssignmentLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	closeQuery := `
		UPDATE assignment_schedules
		SET end_date = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, closeQuery, prevEndDate, prev.ID, prev.Version).Scan(&prev.Version); err != nil {
		return err
	}

	if err := checkEmployeeOverlap(ctx, tx, next.EmployeeID, next.StationID, next.StartDate, next.EndDate); err != nil {
		return err
	}
	if err := checkStationOverlap(ctx, tx, next.StationID, prev.ID, next.StartDate, next.EndDate); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO assignment_schedules (station_id, employee_id, start_date, end_date, kind, shift_start, shift_end, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`
	args := []any{next.StationID, next.EmployeeID, next.StartDate, next.EndDate, next.Kind, next.ShiftStart, next.ShiftEnd, next.CreatedBy}
	if err := tx.QueryRowContext(ctx, insertQuery, args...).Scan(&next.ID, &next.IsActive, &next.CreatedAt, &next.Version); err != nil {
		return err
	}

	for _, log := range logs {
		if err := insertLog(ctx, tx, log); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	prevEnd := prevEndDate
	prev.EndDate = &prevEnd

	return nil
}

// CloseAssignmentWithLog bounds the assignment with an end date. The row
// stays active so the staffing history remains queryable.
func (r *Repository) CloseAssignmentWithLog(s *domain.AssignmentSchedule, endDate time.Time, log *domain.AssignmentLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE assignment_schedules
		SET end_date = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, endDate, s.ID, s.Version).Scan(&s.Version); err != nil {
		return err
	}

	if err := insertLog(ctx, tx, log); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	end := endDate
	s.EndDate = &end

	return nil
}

// DeactivateAssignmentWithLog soft-deletes the row, excluding it from
// effective-assignment resolution while keeping its dates untouched.
func (r *Repository) DeactivateAssignmentWithLog(s *domain.AssignmentSchedule, log *domain.AssignmentLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE assignment_schedules
		SET is_active = FALSE, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, s.ID, s.Version).Scan(&s.Version); err != nil {
		return err
	}
	s.IsActive = false

	if err := insertLog(ctx, tx, log); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// checkEmployeeOverlap fails with ErrEmployeeAlreadyAssigned when the
// employee holds an active assignment at another station intersecting
// [start, end]. A nil end means the requested assignment is open-ended.
func checkEmployeeOverlap(ctx context.Context, tx *sql.Tx, employeeID, excludeStationID int64, start time.Time, end *time.Time) error {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignment_schedules
			WHERE employee_id = $1
				AND station_id <> $2
				AND is_active = TRUE
				AND start_date <= COALESCE($4::date, 'infinity'::date)
				AND (end_date IS NULL OR end_date >= $3::date)
		)
	`

	var conflicting bool
	if err := tx.QueryRowContext(ctx, query, employeeID, excludeStationID, start, end).Scan(&conflicting); err != nil {
		return err
	}
	if conflicting {
		return domain.ErrEmployeeAlreadyAssigned
	}

	return nil
}

// checkStationOverlap fails with ErrStationOccupied when the station already
// has an active assignment intersecting [start, end], ignoring the row with
// excludeID (the one being closed during a reassignment).
func checkStationOverlap(ctx context.Context, tx *sql.Tx, stationID, excludeID int64, start time.Time, end *time.Time) error {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignment_schedules
			WHERE station_id = $1
				AND id <> $2
				AND is_active = TRUE
				AND start_date <= COALESCE($4::date, 'infinity'::date)
				AND (end_date IS NULL OR end_date >= $3::date)
		)
	`

	var occupied bool
	if err := tx.QueryRowContext(ctx, query, stationID, excludeID, start, end).Scan(&occupied); err != nil {
		return err
	}
	if occupied {
		return domain.ErrStationOccupied
	}

	return nil
}

func scanAssignmentRows(rows *sql.Rows) ([]*domain.AssignmentSchedule, error) {
	schedules := make([]*domain.AssignmentSchedule, 0)
	for rows.Next() {
		s := &domain.AssignmentSchedule{}
		dst := []any{&s.ID, &s.StationID, &s.EmployeeID, &s.StartDate, &s.EndDate, &s.Kind, &s.ShiftStart, &s.ShiftEnd, &s.IsActive, &s.CreatedBy, &s.CreatedAt, &s.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}
