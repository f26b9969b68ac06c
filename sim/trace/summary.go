package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Arrivals        int
	Left            int
	Waited          int
	Served          int
	Completed       int
	Rests           int
	UniqueStations  int
	ServedByStation map[int]int // station ID → count of services started
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServedByStation: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	for _, r := range st.Records {
		switch r.Action {
		case ActionArrives:
			summary.Arrivals++
		case ActionLeaves:
			summary.Left++
		case ActionWaits:
			summary.Waited++
		case ActionServed:
			summary.Served++
			summary.ServedByStation[r.StationID]++
		case ActionDone:
			summary.Completed++
		case ActionShutdown:
			summary.Rests++
		}
	}

	summary.UniqueStations = len(summary.ServedByStation)

	return summary
}
