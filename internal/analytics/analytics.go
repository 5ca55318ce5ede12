// Package analytics shapes backend scan counts for display. It does no
// counting of its own.
package analytics

import (
	"math"
	"sort"
	"strconv"
)

// Empty is shown in place of a top key when there is no data.
const Empty = "—"

// BreakdownLimit is the number of rows a breakdown panel shows.
const BreakdownLimit = 5

// TopKey returns the key with the highest count. Ties go to the
// alphabetically first key.
func TopKey(m map[string]int) string {
	rows := sorted(m)
	if len(rows) == 0 {
		return Empty
	}
	return rows[0].Label
}

// Row is one line of a breakdown panel.
type Row struct {
	Label   string
	Count   int
	Percent int
}

// Breakdown returns the top rows of m with their share of total.
func Breakdown(m map[string]int, total int) []Row {
	rows := sorted(m)
	if len(rows) > BreakdownLimit {
		rows = rows[:BreakdownLimit]
	}
	for i := range rows {
		rows[i].Percent = Percent(rows[i].Count, total)
	}
	return rows
}

// Percent is round(count/total*100), with an empty total treated as one.
func Percent(count, total int) int {
	return int(math.Round(float64(count) / float64(max(total, 1)) * 100))
}

// DevicePercent formats the share of device among total scans.
func DevicePercent(devices map[string]int, device string, total int) string {
	if total == 0 {
		return "0%"
	}
	return strconv.Itoa(Percent(devices[device], total)) + "%"
}

// SeriesScale is the value the tallest bar of a time series is scaled to.
func SeriesScale(counts []int) int {
	scale := 10
	for _, c := range counts {
		scale = max(scale, c)
	}
	return scale
}

// BarHeight is the height of a bar in percent of the chart.
func BarHeight(count, scale int) float64 {
	if scale <= 0 {
		return 0
	}
	return float64(count) / float64(scale) * 100
}

func sorted(m map[string]int) []Row {
	rows := make([]Row, 0, len(m))
	for k, v := range m {
		rows = append(rows, Row{Label: k, Count: v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
