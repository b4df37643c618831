// Package terminal draws a dashboard snapshot for the command line.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/dashboard"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/energy"
	"github.com/ANIKETSHETTY47/smart-building-energy-dashboard/internal/view"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E293B"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
	tileStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E2E8F0")).
			Padding(0, 1).
			Width(22)
	valueStyle    = lipgloss.NewStyle().Bold(true)
	subtextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669"))
	improvedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#059669"))
	worseStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#DC2626"))
	onStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	offStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// Render writes the snapshot to w. A nil snapshot prints the loading line.
func Render(w io.Writer, s *dashboard.Snapshot, loc *time.Location) error {
	page := view.Build(s, loc)
	if page.Loading {
		_, err := fmt.Fprintln(w, mutedStyle.Render("Loading telemetry…"))
		return err
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(page.Title) + "\n\n")

	tiles := make([]string, len(page.Tiles))
	for i, t := range page.Tiles {
		body := mutedStyle.Render(strings.ToUpper(t.Title)) + "  " + t.Icon.Glyph() + "\n" + valueStyle.Render(t.Value)
		if t.Subtext != "" {
			body += "\n" + subtextStyle.Render("● "+t.Subtext)
		}
		tiles[i] = tileStyle.Render(body)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tiles...) + "\n\n")

	b.WriteString(comparison(page.Comparison) + "\n\n")

	b.WriteString(headingStyle.Render("Machine Fleet") + "\n")
	for _, m := range page.Machines {
		fmt.Fprintf(&b, "  %-24s %-14s %-16s %s\n", m.Name, m.Type, m.Zone, m.Rating)
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("AI Activity") + "\n")
	if len(page.Timeline) == 0 {
		b.WriteString("  " + mutedStyle.Italic(true).Render(page.Empty) + "\n")
	}
	for _, e := range page.Timeline {
		dot := offStyle.Render("○")
		if e.ActionOn {
			dot = onStyle.Render("●")
		}
		fmt.Fprintf(&b, "  %s %s  %-10s %s\n", dot, e.Time, e.Action, e.Machine)
		if e.Reason != "" {
			b.WriteString("      " + mutedStyle.Render(e.Reason) + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("Snapshot acquired "+page.AcquiredAt) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func comparison(c view.ComparisonPanel) string {
	pct := fmt.Sprintf("%d%%", c.Percent)
	switch c.Classification {
	case energy.Improved:
		pct = improvedStyle.Render(pct)
	case energy.Decreased:
		pct = worseStyle.Render(pct)
	}
	line := fmt.Sprintf("Manual %s kWh  →  AI %s kWh   Total Efficiency Gained %s", c.ManualKWh, c.AIKWh, pct)
	if c.Badge != "" {
		line += " (" + c.Badge + ")"
	}
	if c.NoBaseline {
		line += " " + mutedStyle.Render("no manual baseline")
	}
	return headingStyle.Render("Energy Consumption Analysis") + " " +
		mutedStyle.Render("Manual vs AI Performance ("+c.Period+")") + "\n" + line
}
