package trace

import (
	"fmt"
	"io"
)

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCustomers captures customer events only (the standard trace).
	TraceLevelCustomers TraceLevel = "customers"
	// TraceLevelAll additionally captures station rest/online events.
	TraceLevelAll TraceLevel = "all"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelCustomers: true,
	TraceLevelAll:       true,
	"":                  true, // empty defaults to customers
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// Out, when set, receives each accepted record as a formatted line as it is recorded.
	Out io.Writer
}

// SimulationTrace collects event records during a run.
type SimulationTrace struct {
	Config  TraceConfig
	Records []EventRecord
	err     error
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == "" {
		config.Level = TraceLevelCustomers
	}
	return &SimulationTrace{
		Config:  config,
		Records: make([]EventRecord, 0),
	}
}

// Accepts reports whether a record with the given action is kept at the configured level.
func (st *SimulationTrace) Accepts(a Action) bool {
	switch st.Config.Level {
	case TraceLevelNone:
		return false
	case TraceLevelAll:
		return true
	default:
		return !a.IsStationAction()
	}
}

// Record appends an event record if the trace level accepts it.
// The first write error is kept and returned by Err.
func (st *SimulationTrace) Record(record EventRecord) {
	if !st.Accepts(record.Action) {
		return
	}
	st.Records = append(st.Records, record)
	if st.Config.Out != nil && st.err == nil {
		if _, err := fmt.Fprintln(st.Config.Out, record.Format()); err != nil {
			st.err = fmt.Errorf("write trace: %w", err)
		}
	}
}

// Err returns the first error encountered writing to Out.
func (st *SimulationTrace) Err() error {
	return st.err
}

// Lines returns every recorded event formatted as a trace line.
func (st *SimulationTrace) Lines() []string {
	lines := make([]string, 0, len(st.Records))
	for _, r := range st.Records {
		lines = append(lines, r.Format())
	}
	return lines
}
