package dashboard

import (
	"time"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/models"
)

// MaxLogs bounds the activity timeline.
const MaxLogs = 8

type Summary struct {
	TotalPowerKW       float64 `json:"total_power_kw"`
	ActiveMachines     int     `json:"active_machines"`
	TotalMachines      int     `json:"total_machines"`
	AverageTemperature float64 `json:"average_temperature"`
}

type Comparison struct {
	ManualKWh float64 `json:"manual_period_kwh"`
	AIKWh     float64 `json:"ai_period_kwh"`
	// ReportedSavingsPercent is the figure the API computed itself. It is kept
	// for inspection only; the dashboard renders Improvement instead.
	ReportedSavingsPercent float64                  `json:"reported_savings_percent"`
	Improvement            energy.ImprovementResult `json:"improvement"`
}

// Snapshot is one fully normalized joint acquisition. It is built once by the
// Loader and never modified afterwards; holders must treat it as read-only.
type Snapshot struct {
	ID         string           `json:"id"`
	AcquiredAt time.Time        `json:"acquired_at"`
	Summary    Summary          `json:"summary"`
	Comparison Comparison       `json:"compare"`
	Machines   []models.Machine `json:"machines"`
	Logs       []models.AILog   `json:"logs"`
}

type raw struct {
	summary  models.Summary
	machines []models.Machine
	logs     []models.AILog
	compare  models.EnergyComparison
}

func normalize(id string, at time.Time, r raw) *Snapshot {
	manual := models.Float(r.compare.ManualPeriodKWh)
	ai := models.Float(r.compare.AIPeriodKWh)

	machines := make([]models.Machine, len(r.machines))
	copy(machines, r.machines)

	n := len(r.logs)
	if n > MaxLogs {
		n = MaxLogs
	}
	logs := make([]models.AILog, n)
	copy(logs, r.logs[:n])

	return &Snapshot{
		ID:         id,
		AcquiredAt: at,
		Summary: Summary{
			TotalPowerKW:       models.Float(r.summary.TotalPowerKW),
			ActiveMachines:     models.Int(r.summary.ActiveMachines),
			TotalMachines:      models.Int(r.summary.TotalMachines),
			AverageTemperature: models.Float(r.summary.AverageTemperature),
		},
		Comparison: Comparison{
			ManualKWh:              manual,
			AIKWh:                  ai,
			ReportedSavingsPercent: models.Float(r.compare.SavingsPercent),
			Improvement:            energy.Improvement(manual, ai),
		},
		Machines: machines,
		Logs:     logs,
	}
}
