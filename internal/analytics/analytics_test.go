package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKey(t *testing.T) {
	assert.Equal(t, Empty, TopKey(nil))
	assert.Equal(t, Empty, TopKey(map[string]int{}))
	assert.Equal(t, "Mobile", TopKey(map[string]int{"Desktop": 2, "Mobile": 5}))
	assert.Equal(t, "AR", TopKey(map[string]int{"US": 3, "AR": 3}))
}

func TestBreakdown(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6}
	rows := Breakdown(m, 21)
	assert.Len(t, rows, BreakdownLimit)
	assert.Equal(t, Row{Label: "f", Count: 6, Percent: 29}, rows[0])
	assert.Equal(t, "b", rows[4].Label)

	assert.Empty(t, Breakdown(nil, 0))

	rows = Breakdown(map[string]int{"x": 3}, 0)
	assert.Equal(t, 300, rows[0].Percent, "zero total divides by one")
}

func TestDevicePercent(t *testing.T) {
	devices := map[string]int{"Mobile": 2, "Desktop": 1}
	assert.Equal(t, "67%", DevicePercent(devices, "Mobile", 3))
	assert.Equal(t, "0%", DevicePercent(devices, "Tablet", 3))
	assert.Equal(t, "0%", DevicePercent(nil, "Mobile", 0))
}

func TestSeriesScale(t *testing.T) {
	assert.Equal(t, 10, SeriesScale(nil))
	assert.Equal(t, 10, SeriesScale([]int{3, 7}))
	assert.Equal(t, 42, SeriesScale([]int{3, 42, 7}))
	assert.InDelta(t, 50.0, BarHeight(5, 10), 0.001)
	assert.Zero(t, BarHeight(5, 0))
}
