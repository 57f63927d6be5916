package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/HaruLab/travel-planning/internal/domain"
	"github.com/HaruLab/travel-planning/internal/persist"
	"github.com/HaruLab/travel-planning/internal/timeline"
)

// The timeline must stay readable on both light and dark terminals, so every
// color is an AdaptiveColor pair.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(ac("240", "245"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(ac("27", "212"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(ac("160", "203"))
	badgeOK      = lipgloss.NewStyle().Foreground(ac("28", "42"))
	badgeWorking = lipgloss.NewStyle().Foreground(ac("130", "214"))
	badgeError   = lipgloss.NewStyle().Foreground(ac("160", "203"))
	barStyle     = lipgloss.NewStyle().Foreground(ac("27", "62"))
)

// kindGlyph is the one-character marker shown before each activity.
var kindGlyph = map[domain.ActivityKind]string{
	domain.KindTrain:       "🚄",
	domain.KindBus:         "🚌",
	domain.KindPlane:       "✈️",
	domain.KindWalk:        "🚶",
	domain.KindSightseeing: "🏯",
	domain.KindFood:        "🍜",
	domain.KindStay:        "🏨",
	domain.KindOther:       "📍",
}

// syncBadge renders the persistence status shown in the header.
func syncBadge(status persist.Status) string {
	switch status {
	case persist.StatusSyncing:
		return badgeWorking.Render("[syncing]")
	case persist.StatusError:
		return badgeError.Render("[sync error]")
	default:
		return badgeOK.Render("[saved]")
	}
}

// progressBar renders p (0..100) as a fixed-width bar.
func progressBar(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	filled := int(p/100*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return barStyle.Render(bar) + mutedStyle.Render(fmt.Sprintf(" %3.0f%%", p))
}

// renderTrip formats the whole timeline view for one instant.
func renderTrip(t domain.Trip, now timeline.Clock, status persist.Status) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(t.Title))
	if t.Date != "" {
		b.WriteString("  " + mutedStyle.Render(t.Date))
	}
	b.WriteString("  " + syncBadge(status) + "\n")

	acts := t.Activities
	if len(acts) == 0 {
		b.WriteString(mutedStyle.Render("no activities yet; try: voyage add --help") + "\n")
		return b.String()
	}

	b.WriteString(progressBar(timeline.Progress(now, acts), 30))
	if left, ok := timeline.TotalRemaining(now, acts); ok {
		b.WriteString(mutedStyle.Render("  ends in " + left.LongCountdown()))
	}
	b.WriteString("\n\n")

	cur := timeline.Current(now, acts)
	for i, a := range acts {
		line := fmt.Sprintf("%2d  %s–%s  %s %s  %s", i+1, a.StartTime, a.EndTime, kindGlyph[a.Kind], a.Kind.Label(), a.Title)
		if a.Kind.IsTransport() && a.Destination != "" {
			line += fmt.Sprintf("  %s → %s", a.Origin, a.Destination)
		} else if a.Origin != "" {
			line += "  " + a.Origin
		}
		if a.Price > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  ¥%.0f", a.Price))
		}
		if a.Weather != nil {
			line += mutedStyle.Render(fmt.Sprintf("  %d°C", a.Weather.Temperature))
		}

		if i == cur {
			left := timeline.Remaining(now, a)
			line = currentStyle.Render("▶"+line) + currentStyle.Render("  "+left.Countdown()+" left")
		} else {
			line = " " + line
		}
		b.WriteString(line + "\n")

		for _, td := range a.Todos {
			box := "[ ]"
			if td.Completed {
				box = "[x]"
			}
			b.WriteString(mutedStyle.Render("      "+box+" "+td.Text) + "\n")
		}
	}

	if timeline.Warning(now, acts) {
		b.WriteString("\n" + warnStyle.Render("⚠ the next activity starts within 10 minutes") + "\n")
	}

	if total := t.TotalPrice(); total > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("\ntotal ¥%.0f", total)) + "\n")
	}

	return b.String()
}
