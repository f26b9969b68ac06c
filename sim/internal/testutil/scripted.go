// Package testutil provides shared test infrastructure for the simulator.
// It has no dependency on sim/ so both sim and cmd tests can use it.
package testutil

import (
	"math"
	"testing"
)

// ScriptedSource replays fixed sample sequences. Each sequence repeats its
// last value once exhausted; an empty sequence yields 0.
// It satisfies sim.RandomSource.
type ScriptedSource struct {
	Gaps          []float64
	Services      []float64
	Rests         []float64
	RestTriggers  []float64
	CustomerTypes []float64

	gapIdx, serviceIdx, restIdx, triggerIdx, typeIdx int
}

func next(seq []float64, idx *int) float64 {
	if len(seq) == 0 {
		return 0
	}
	i := min(*idx, len(seq)-1)
	*idx++
	return seq[i]
}

func (s *ScriptedSource) InterArrivalGap() float64    { return next(s.Gaps, &s.gapIdx) }
func (s *ScriptedSource) ServiceDuration() float64    { return next(s.Services, &s.serviceIdx) }
func (s *ScriptedSource) RestDuration() float64       { return next(s.Rests, &s.restIdx) }
func (s *ScriptedSource) RestTrigger() float64        { return next(s.RestTriggers, &s.triggerIdx) }
func (s *ScriptedSource) CustomerTypeSample() float64 { return next(s.CustomerTypes, &s.typeIdx) }

// ServiceCalls returns how many service durations have been drawn.
func (s *ScriptedSource) ServiceCalls() int {
	return s.serviceIdx
}

// AssertFloat64Equal compares two float64 values with absolute tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, tol float64) {
	t.Helper()
	if math.Abs(want-got) > tol {
		t.Errorf("%s: got %v, want %v (diff=%v)", name, got, want, math.Abs(want-got))
	}
}
