package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

// insertLog appends one immutable audit entry inside the caller's transaction.
// Every mutating operation goes through here, so a rolled back transaction
// never leaves an orphaned log row behind.
func insertLog(ctx context.Context, tx *sql.Tx, log *domain.AssignmentLog) error {
	query := `
		INSERT INTO assignment_logs (action, station_id, employee_id, performed_by, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	args := []any{log.Action, log.StationID, log.EmployeeID, log.PerformedBy, log.Note}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&log.ID, &log.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) PageRecentLogs(limit, offset int) ([]*domain.AssignmentLog, error) {
	query := `
		SELECT id, action, station_id, employee_id, performed_by, note, created_at
		FROM assignment_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*domain.AssignmentLog, 0)
	for rows.Next() {
		log := &domain.AssignmentLog{}
		dst := []any{&log.ID, &log.Action, &log.StationID, &log.EmployeeID, &log.PerformedBy, &log.Note, &log.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
