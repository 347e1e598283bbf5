package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeByRegion(t *testing.T) {
	warehouses := []Warehouse{
		{WarehouseID: "W1", Region: "East", Capacity: 60, CurrentUnits: 30},
		{WarehouseID: "W2", Region: "West", Capacity: 50, CurrentUnits: 45},
		{WarehouseID: "W3", Region: "East", Capacity: 40, CurrentUnits: 20},
	}
	summaries := SummarizeByRegion(warehouses)
	require.Len(t, summaries, 2)

	byRegion := make(map[string]RegionSummary)
	for _, s := range summaries {
		byRegion[s.Region] = s
	}
	east := byRegion["East"]
	assert.Equal(t, int64(100), east.Capacity)
	assert.Equal(t, int64(50), east.Current)
	assert.Equal(t, 0.5, east.Utilization)
	assert.Equal(t, 2, east.Sites)

	west := byRegion["West"]
	assert.InDelta(t, 0.9, west.Utilization, 1e-9)
	assert.Equal(t, 1, west.Sites)
}

func TestSummarizeByRegionZeroCapacity(t *testing.T) {
	summaries := SummarizeByRegion([]Warehouse{{Region: "North", Capacity: 0, CurrentUnits: 5}})
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].Utilization)
	assert.Nil(t, SummarizeByRegion(nil))
}

func TestTotalsOf(t *testing.T) {
	totals := TotalsOf([]RegionSummary{
		{Region: "East", Capacity: 100, Current: 50, Sites: 2},
		{Region: "West", Capacity: 100, Current: 90, Sites: 1},
	})
	assert.Equal(t, "All regions", totals.Region)
	assert.Equal(t, int64(200), totals.Capacity)
	assert.Equal(t, int64(140), totals.Current)
	assert.Equal(t, 3, totals.Sites)
	assert.InDelta(t, 0.7, totals.Utilization, 1e-9)
	assert.Equal(t, 0.0, TotalsOf(nil).Utilization)
}

func TestSummarizeByRegionZeroCapacitySite(t *testing.T) {
	summaries := SummarizeByRegion([]Warehouse{
		{Region: "East", Capacity: 100, CurrentUnits: 50},
		{Region: "East", Capacity: 0, CurrentUnits: 0},
	})
	require.Len(t, summaries, 1)
	assert.Equal(t, RegionSummary{Region: "East", Capacity: 100, Current: 50, Utilization: 0.5, Sites: 2}, summaries[0])
}

func TestSummarizeByRegionConservesTotals(t *testing.T) {
	warehouses := []Warehouse{
		{Region: "East", Capacity: 12000, CurrentUnits: 8400},
		{Region: "West", Capacity: 10000, CurrentUnits: 6100},
		{Region: "East", Capacity: 8000, CurrentUnits: 4000},
		{Region: "Central", Capacity: 6000, CurrentUnits: 3900},
		{Region: "", Capacity: 10, CurrentUnits: 1},
	}
	var capacity, current int64
	for _, wh := range warehouses {
		capacity += wh.Capacity
		current += wh.CurrentUnits
	}
	summaries := SummarizeByRegion(warehouses)
	require.Len(t, summaries, 4)
	seen := make(map[string]bool)
	var gotCapacity, gotCurrent int64
	for _, s := range summaries {
		assert.False(t, seen[s.Region], "duplicate region %q", s.Region)
		seen[s.Region] = true
		gotCapacity += s.Capacity
		gotCurrent += s.Current
	}
	assert.Equal(t, capacity, gotCapacity)
	assert.Equal(t, current, gotCurrent)
}
