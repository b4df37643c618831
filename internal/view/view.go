// Package view turns a dashboard snapshot into display-ready values. Everything
// here is a pure function of its input.
package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/models"
)

type Icon string

const (
	IconPower      Icon = "power"
	IconMachines   Icon = "machines"
	IconTemp       Icon = "temp"
	IconEfficiency Icon = "efficiency"
)

// glyphs maps each icon key to the symbol drawn in its tile.
var glyphs = map[Icon]string{
	IconPower:      "⚡",
	IconMachines:   "🌀",
	IconTemp:       "🌡",
	IconEfficiency: "🧠",
}

// Glyph falls back to the power symbol for unknown keys.
func (i Icon) Glyph() string {
	if g, ok := glyphs[i]; ok {
		return g
	}
	return glyphs[IconPower]
}

type StatTile struct {
	Title   string
	Value   string
	Subtext string
	Icon    Icon
}

func StatTiles(s *dashboard.Snapshot) []StatTile {
	return []StatTile{
		{Title: "Real-time Load", Value: Number(s.Summary.TotalPowerKW) + " kW", Icon: IconPower},
		{
			Title:   "Active Machines",
			Value:   fmt.Sprintf("%d / %d", s.Summary.ActiveMachines, s.Summary.TotalMachines),
			Subtext: "Operational",
			Icon:    IconMachines,
		},
		{Title: "Avg Temperature", Value: Number(s.Summary.AverageTemperature) + "°C", Icon: IconTemp},
		{
			Title:   "AI Efficiency",
			Value:   fmt.Sprintf("%d%%", s.Comparison.Improvement.Percent),
			Subtext: "Optimized",
			Icon:    IconEfficiency,
		},
	}
}

type MachineTile struct {
	Name   string
	Type   string
	Zone   string
	Rating string
}

func MachineTiles(machines []models.Machine) []MachineTile {
	out := make([]MachineTile, len(machines))
	for i, m := range machines {
		out[i] = MachineTile{
			Name:   m.Name,
			Type:   m.MachineType,
			Zone:   m.Zone,
			Rating: Number(m.RatedPowerKW) + " kW",
		}
	}
	return out
}

type ComparisonPanel struct {
	Period         string
	ManualKWh      string
	AIKWh          string
	Percent        int
	Classification energy.Classification
	Badge          string
	NoBaseline     bool
}

func Comparison(manualKWh, aiKWh float64) ComparisonPanel {
	res := energy.Improvement(manualKWh, aiKWh)
	return ComparisonPanel{
		Period:         "7-day period",
		ManualKWh:      strconv.FormatFloat(manualKWh, 'f', 1, 64),
		AIKWh:          strconv.FormatFloat(aiKWh, 'f', 1, 64),
		Percent:        res.Percent,
		Classification: res.Classification,
		Badge:          res.Classification.Badge(),
		NoBaseline:     res.NoBaseline,
	}
}

// EmptyTimeline is shown while no AI decision has been logged.
const EmptyTimeline = "Waiting for AI decisions..."

type TimelineEntry struct {
	Time     string
	Machine  string
	Action   string
	Reason   string
	ActionOn bool
}

// Timeline renders log timestamps as HH:MM in loc. Timestamps that do not
// parse as RFC 3339 are shown verbatim.
func Timeline(logs []models.AILog, loc *time.Location) []TimelineEntry {
	if loc == nil {
		loc = time.Local
	}
	out := make([]TimelineEntry, len(logs))
	for i, l := range logs {
		out[i] = TimelineEntry{
			Time:     clock(l.Timestamp, loc),
			Machine:  l.MachineName,
			Action:   l.ActionType,
			Reason:   l.Reason,
			ActionOn: l.IsActionOn(),
		}
	}
	return out
}

func clock(ts string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.In(loc).Format("15:04")
}

// Number prints v in its shortest decimal form.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Page is everything one dashboard render needs.
type Page struct {
	Title      string
	Loading    bool
	APIStatus  string
	Tiles      []StatTile
	Comparison ComparisonPanel
	Machines   []MachineTile
	Timeline   []TimelineEntry
	Empty      string
	AcquiredAt string
}

// Build assembles a page for s; a nil snapshot yields the loading page.
func Build(s *dashboard.Snapshot, loc *time.Location) Page {
	p := Page{Title: "Building Energy Dashboard", Empty: EmptyTimeline}
	if s == nil {
		p.Loading = true
		return p
	}
	if loc == nil {
		loc = time.Local
	}
	p.Tiles = StatTiles(s)
	p.Comparison = Comparison(s.Comparison.ManualKWh, s.Comparison.AIKWh)
	p.Machines = MachineTiles(s.Machines)
	p.Timeline = Timeline(s.Logs, loc)
	p.AcquiredAt = s.AcquiredAt.In(loc).Format("2006-01-02 15:04:05")
	return p
}
