// Tracks simulation-wide and per-station service statistics such as:
// customers served and turned away, cumulative wait time, and rest counts.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the simulation for final reporting.
// All counters are monotonically increasing.
type Metrics struct {
	Arrivals      int     // Number of Arrived events processed
	Served        int     // Number of customers whose service completed
	NotServed     int     // Number of customers that left without service
	TotalWaitTime float64 // Sum of (service start - arrival) across served customers

	WaitTimes     []float64   // Per-customer wait, in service-start order
	StationServed map[int]int // station ID -> customers served to completion
	StationRests  map[int]int // station ID -> number of rest periods taken
	SimEndedTime  float64     // Timestamp of the last processed event
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		WaitTimes:     make([]float64, 0),
		StationServed: make(map[int]int),
		StationRests:  make(map[int]int),
	}
}

// RecordArrival counts an Arrived event.
func (m *Metrics) RecordArrival() {
	m.Arrivals++
}

// RecordWait accumulates the wait of a customer whose service just started.
func (m *Metrics) RecordWait(wait float64) {
	m.TotalWaitTime += wait
	m.WaitTimes = append(m.WaitTimes, wait)
}

// RecordServed counts a completed service at the given station.
func (m *Metrics) RecordServed(stationID int) {
	m.Served++
	m.StationServed[stationID]++
}

// RecordNotServed counts a customer that left.
func (m *Metrics) RecordNotServed() {
	m.NotServed++
}

// RecordRest counts a rest period taken by the given station.
func (m *Metrics) RecordRest(stationID int) {
	m.StationRests[stationID]++
}

// AverageWait returns TotalWaitTime / Served, or 0 if nobody was served.
func (m *Metrics) AverageWait() float64 {
	if m.Served == 0 {
		return 0
	}
	return m.TotalWaitTime / float64(m.Served)
}

// Summary renders the final statistics line: "[avgWait served notServed]".
func (m *Metrics) Summary() string {
	return fmt.Sprintf("[%.3f %d %d]", m.AverageWait(), m.Served, m.NotServed)
}

// Print writes the summary line to w.
func (m *Metrics) Print(w io.Writer) error {
	_, err := fmt.Fprintln(w, m.Summary())
	return err
}
