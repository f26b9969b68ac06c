// sim/metrics_utils.go
package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// WaitDistribution summarizes the per-customer wait times of a run.
type WaitDistribution struct {
	Mean float64 `json:"mean"`
	P50  float64 `json:"p50"`
	P90  float64 `json:"p90"`
	P99  float64 `json:"p99"`
	Max  float64 `json:"max"`
}

// StationResult holds per-station counters for the results file.
type StationResult struct {
	Served int `json:"served"`
	Rests  int `json:"rests"`
}

// Results is the JSON document written by SaveResults.
type Results struct {
	RunID        string                   `json:"run_id"`
	Config       Config                   `json:"config"`
	Arrivals     int                      `json:"arrivals"`
	Served       int                      `json:"served"`
	NotServed    int                      `json:"not_served"`
	AverageWait  float64                  `json:"average_wait"`
	Wait         WaitDistribution         `json:"wait"`
	SimEndedTime float64                  `json:"sim_ended_time"`
	Stations     map[string]StationResult `json:"stations"`
}

// CalculatePercentile returns the p-th percentile (0-100) of data using the
// empirical CDF. data is not modified. Returns 0 for empty input.
func CalculatePercentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// CalculateMean returns the arithmetic mean of data, or 0 for empty input.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// WaitDistribution computes the wait-time distribution of served customers.
func (m *Metrics) WaitDistribution() WaitDistribution {
	d := WaitDistribution{
		Mean: CalculateMean(m.WaitTimes),
		P50:  CalculatePercentile(m.WaitTimes, 50),
		P90:  CalculatePercentile(m.WaitTimes, 90),
		P99:  CalculatePercentile(m.WaitTimes, 99),
	}
	for _, w := range m.WaitTimes {
		d.Max = max(d.Max, w)
	}
	return d
}

// Results assembles the results document for a run.
func (m *Metrics) Results(runID string, cfg Config) Results {
	stations := make(map[string]StationResult)
	for id, n := range m.StationServed {
		r := stations[strconv.Itoa(id)]
		r.Served = n
		stations[strconv.Itoa(id)] = r
	}
	for id, n := range m.StationRests {
		r := stations[strconv.Itoa(id)]
		r.Rests = n
		stations[strconv.Itoa(id)] = r
	}
	return Results{
		RunID:        runID,
		Config:       cfg,
		Arrivals:     m.Arrivals,
		Served:       m.Served,
		NotServed:    m.NotServed,
		AverageWait:  m.AverageWait(),
		Wait:         m.WaitDistribution(),
		SimEndedTime: m.SimEndedTime,
		Stations:     stations,
	}
}

// SaveResults writes the results document as indented JSON to path.
func (m *Metrics) SaveResults(path string, runID string, cfg Config) error {
	data, err := json.MarshalIndent(m.Results(runID, cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results %s: %w", path, err)
	}
	logrus.Infof("Results written to %s", path)
	return nil
}
