package widgets

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dayLayout = "January 2, 2006"

// DaySeparator is the non-interactive date marker of a timeline.
type DaySeparator struct {
	Date  time.Time
	Label string
}

// DayLabel returns "Today" when t falls on the same calendar date as now,
// in t's location.
func DayLabel(t, now time.Time) string {
	if SameDay(t, now.In(t.Location())) {
		return "Today"
	}
	return t.Format(dayLayout)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (d *DaySeparator) view(t Theme, width int) string {
	label := t.Day.Render(d.Label)
	if width <= 0 {
		return label
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, label)
}
