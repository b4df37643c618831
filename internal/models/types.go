package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Envelope accepts both `{"data": ...}` and a bare payload.
type Envelope[T any] struct {
	Data T
}

func (e *Envelope[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if raw, ok := probe["data"]; ok {
			return json.Unmarshal(raw, &e.Data)
		}
	}
	return json.Unmarshal(trimmed, &e.Data)
}

// Summary is the building-wide aggregate. Every field may be absent on the wire.
type Summary struct {
	TotalPowerKW       *float64 `json:"total_power_kw,omitempty"`
	ActiveMachines     *int     `json:"active_machines,omitempty"`
	TotalMachines      *int     `json:"total_machines,omitempty"`
	AverageTemperature *float64 `json:"average_temperature,omitempty"`
}

type Machine struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Zone         string  `json:"zone"`
	MachineType  string  `json:"machine_type"`
	RatedPowerKW float64 `json:"rated_power_kw"`
}

type AILog struct {
	Timestamp   string `json:"timestamp"`
	MachineName string `json:"machine_name"`
	ActionType  string `json:"action_type"`
	Reason      string `json:"reason"`
}

// IsActionOn reports whether the action switched a machine on.
func (l AILog) IsActionOn() bool {
	return strings.Contains(l.ActionType, "ON")
}

// EnergyComparison covers the fixed 7-day reporting window.
type EnergyComparison struct {
	ManualPeriodKWh *float64 `json:"manual_period_kwh,omitempty"`
	AIPeriodKWh     *float64 `json:"ai_period_kwh,omitempty"`
	SavingsPercent  *float64 `json:"savings_percent,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}

// Float returns *p or 0.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Int returns *p or 0.
func Int(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
