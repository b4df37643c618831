package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	id                       BIGSERIAL PRIMARY KEY,
	acquisition_id           TEXT NOT NULL UNIQUE,
	acquired_at              TIMESTAMPTZ NOT NULL,
	manual_kwh               DOUBLE PRECISION NOT NULL,
	ai_kwh                   DOUBLE PRECISION NOT NULL,
	improvement_percent      INTEGER NOT NULL,
	classification           TEXT NOT NULL,
	reported_savings_percent DOUBLE PRECISION NOT NULL,
	total_power_kw           DOUBLE PRECISION NOT NULL,
	active_machines          INTEGER NOT NULL,
	total_machines           INTEGER NOT NULL
)`

type Snapshots struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Snapshots { return &Snapshots{db: db} }

func (r *Snapshots) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *Snapshots) Insert(ctx context.Context, rec *domain.SnapshotRecord) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO dashboard_snapshots
		(acquisition_id, acquired_at, manual_kwh, ai_kwh, improvement_percent, classification,
		 reported_savings_percent, total_power_kw, active_machines, total_machines)
		VALUES (:acquisition_id, :acquired_at, :manual_kwh, :ai_kwh, :improvement_percent, :classification,
		 :reported_savings_percent, :total_power_kw, :active_machines, :total_machines)
		ON CONFLICT (acquisition_id) DO NOTHING`, rec)
	return err
}

// Recent returns up to limit records, newest first.
func (r *Snapshots) Recent(ctx context.Context, limit int) ([]domain.SnapshotRecord, error) {
	var out []domain.SnapshotRecord
	err := r.db.SelectContext(ctx, &out, `SELECT id, acquisition_id, acquired_at, manual_kwh, ai_kwh,
		improvement_percent, classification, reported_savings_percent, total_power_kw,
		active_machines, total_machines
		FROM dashboard_snapshots ORDER BY acquired_at DESC LIMIT $1`, limit)
	return out, err
}
