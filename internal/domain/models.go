package domain

import "time"

// SnapshotRecord is one archived dashboard acquisition.
type SnapshotRecord struct {
	ID                 int64     `db:"id" json:"id"`
	AcquisitionID      string    `db:"acquisition_id" json:"acquisition_id"`
	AcquiredAt         time.Time `db:"acquired_at" json:"acquired_at"`
	ManualKWh          float64   `db:"manual_kwh" json:"manual_kwh"`
	AIKWh              float64   `db:"ai_kwh" json:"ai_kwh"`
	ImprovementPercent int       `db:"improvement_percent" json:"improvement_percent"`
	Classification     string    `db:"classification" json:"classification"`
	ReportedSavings    float64   `db:"reported_savings_percent" json:"reported_savings_percent"`
	TotalPowerKW       float64   `db:"total_power_kw" json:"total_power_kw"`
	ActiveMachines     int       `db:"active_machines" json:"active_machines"`
	TotalMachines      int       `db:"total_machines" json:"total_machines"`
}
