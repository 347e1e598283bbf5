package dashboard

// SummarizeByRegion rolls warehouses up per region in a single pass. Regions
// whose summed capacity is zero report zero utilization. Output follows the
// order in which regions first appear, but callers must not depend on it.
func SummarizeByRegion(warehouses []Warehouse) []RegionSummary {
	if len(warehouses) == 0 {
		return nil
	}
	index := make(map[string]int)
	out := make([]RegionSummary, 0)
	for _, wh := range warehouses {
		pos, ok := index[wh.Region]
		if !ok {
			pos = len(out)
			index[wh.Region] = pos
			out = append(out, RegionSummary{Region: wh.Region})
		}
		entry := &out[pos]
		entry.Capacity += wh.Capacity
		entry.Current += wh.CurrentUnits
		entry.Sites++
	}
	for i := range out {
		out[i].Utilization = utilization(out[i].Current, out[i].Capacity)
	}
	return out
}

// TotalsOf sums region summaries into a single network-wide summary.
func TotalsOf(summaries []RegionSummary) RegionSummary {
	total := RegionSummary{Region: "All regions"}
	for _, s := range summaries {
		total.Capacity += s.Capacity
		total.Current += s.Current
		total.Sites += s.Sites
	}
	total.Utilization = utilization(total.Current, total.Capacity)
	return total
}

func utilization(current, capacity int64) float64 {
	if capacity == 0 {
		return 0
	}
	return float64(current) / float64(capacity)
}
