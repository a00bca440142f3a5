package render

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/order-sync-tracker/internal/domain"
)

const (
	barGlyph        = "█"
	chartLabelWidth = 12
	chartCountWidth = 18
	minBarWidth     = 10

	// DefaultWidth is the layout width used when the terminal size is unknown.
	DefaultWidth = 80
)

// Segments holds the cell widths of one stacked bar.
type Segments struct {
	Success int
	Failed  int
	Pending int
}

// Total returns the bar length in cells.
func (s Segments) Total() int {
	return s.Success + s.Failed + s.Pending
}

// ScaleSegments sizes a channel's bar relative to the largest channel total.
// Non-zero counts always get at least one cell and the bar never exceeds width.
func ScaleSegments(a domain.ChannelAggregate, maxTotal, width int) Segments {
	if maxTotal <= 0 || width <= 0 || a.Total() == 0 {
		return Segments{}
	}
	barLen := a.Total() * width / maxTotal
	if barLen < 1 {
		barLen = 1
	}

	counts := []int{a.Success, a.Failed, a.Pending}
	cells := make([]int, len(counts))
	used := 0
	for i, c := range counts {
		if c == 0 {
			continue
		}
		cells[i] = c * barLen / a.Total()
		if cells[i] == 0 {
			cells[i] = 1
		}
		used += cells[i]
	}
	// Hand rounding leftovers to the largest segment, or take the excess from it.
	largest := 0
	for i := range cells {
		if cells[i] > cells[largest] {
			largest = i
		}
	}
	if diff := barLen - used; diff != 0 {
		cells[largest] += diff
		if cells[largest] < 1 && counts[largest] > 0 {
			cells[largest] = 1
		}
	}
	return Segments{Success: cells[0], Failed: cells[1], Pending: cells[2]}
}

// Chart renders one stacked horizontal bar per channel in aggregate order.
func Chart(aggregates []domain.ChannelAggregate, width int) string {
	if len(aggregates) == 0 {
		return mutedStyle.Render("No orders to chart.")
	}

	barWidth := width - chartLabelWidth - chartCountWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	maxTotal := domain.MaxTotal(aggregates)

	var sb strings.Builder
	for i, a := range aggregates {
		seg := ScaleSegments(a, maxTotal, barWidth)
		pad := barWidth - seg.Total()
		if pad < 0 {
			pad = 0
		}
		bar := segment(domain.StatusSuccess, seg.Success) +
			segment(domain.StatusFailed, seg.Failed) +
			segment(domain.StatusPending, seg.Pending) +
			strings.Repeat(" ", pad)
		counts := fmt.Sprintf("%d/%d/%d", a.Success, a.Failed, a.Pending)
		sb.WriteString(fmt.Sprintf("%-*s %s %s", chartLabelWidth, clip(a.Channel, chartLabelWidth), bar, counts))
		if i < len(aggregates)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(Legend())
	return sb.String()
}

// Legend explains the chart colors and the count order.
func Legend() string {
	parts := make([]string, 0, len(domain.KnownStatuses))
	for _, status := range domain.KnownStatuses {
		parts = append(parts, StatusStyle(status).Render(barGlyph)+" "+status.String())
	}
	return mutedStyle.Render("counts are success/failed/pending  ") + strings.Join(parts, "  ")
}

func segment(status domain.OrderStatus, cells int) string {
	if cells <= 0 {
		return ""
	}
	return StatusStyle(status).Render(strings.Repeat(barGlyph, cells))
}
