package repository

import (
	"context"
	"time"

	"github.com/clinicops/station-scheduler/backend/internal/domain"
)

func (r *Repository) GetStationByID(id int64) (*domain.Station, error) {
	query := `
		SELECT name, type, sequence_number, service_id, is_active, created_at, version
		FROM stations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	station := &domain.Station{
		ID: id,
	}

	dst := []any{&station.Name, &station.Type, &station.SequenceNumber, &station.ServiceID, &station.IsActive, &station.CreatedAt, &station.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return station, nil
}

func (r *Repository) GetAllStations() ([]*domain.Station, error) {
	query := `
		SELECT id, name, type, sequence_number, service_id, is_active, created_at, version
		FROM stations
		ORDER BY type, sequence_number
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		station := &domain.Station{}
		dst := []any{&station.ID, &station.Name, &station.Type, &station.SequenceNumber, &station.ServiceID, &station.IsActive, &station.CreatedAt, &station.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *Repository) CreateStation(station *domain.Station) error {
	query := `
		INSERT INTO stations (name, type, sequence_number, service_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{station.Name, station.Type, station.SequenceNumber, station.ServiceID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&station.ID, &station.IsActive, &station.CreatedAt, &station.Version); err != nil {
		return err
	}

	return nil
}

// SetStationActive flips the station's active flag and records the toggle in
// the assignment log, both inside one transaction. Assignment schedule rows
// are deliberately left untouched.
func (r *Repository) SetStationActive(station *domain.Station, makeActive bool, log *domain.AssignmentLog) error {
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
		UPDATE stations
		SET is_active = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, makeActive, station.ID, station.Version).Scan(&station.Version); err != nil {
		return err
	}
	station.IsActive = makeActive

	if err := insertLog(ctx, tx, log); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
