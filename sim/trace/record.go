// Package trace provides event-trace recording for simulation runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

import "fmt"

// Action is what happened to a customer or station in one event.
type Action string

const (
	ActionArrives  Action = "arrives"
	ActionLeaves   Action = "leaves"
	ActionWaits    Action = "waits"
	ActionServed   Action = "served"
	ActionDone     Action = "done"
	ActionShutdown Action = "shutdown"
	ActionOnline   Action = "online"
)

// IsStationAction reports whether a is a station-lifecycle action.
func (a Action) IsStationAction() bool {
	return a == ActionShutdown || a == ActionOnline
}

// EventRecord captures a single processed event.
// CustomerID is 0 for station-lifecycle records; StationID is 0 for arrive/leave records.
type EventRecord struct {
	Clock        float64
	Action       Action
	CustomerID   int
	Greedy       bool
	StationID    int
	SelfCheckout bool
}

func (r EventRecord) customer() string {
	if r.Greedy {
		return fmt.Sprintf("%d(greedy)", r.CustomerID)
	}
	return fmt.Sprintf("%d", r.CustomerID)
}

func (r EventRecord) station() string {
	if r.SelfCheckout {
		return fmt.Sprintf("self-check %d", r.StationID)
	}
	return fmt.Sprintf("server %d", r.StationID)
}

// Format renders the record as one trace line, e.g.
// "1.500 2(greedy) waits to be served by server 1".
func (r EventRecord) Format() string {
	switch r.Action {
	case ActionArrives:
		return fmt.Sprintf("%.3f %s arrives", r.Clock, r.customer())
	case ActionLeaves:
		return fmt.Sprintf("%.3f %s leaves", r.Clock, r.customer())
	case ActionWaits:
		return fmt.Sprintf("%.3f %s waits to be served by %s", r.Clock, r.customer(), r.station())
	case ActionServed:
		return fmt.Sprintf("%.3f %s served by %s", r.Clock, r.customer(), r.station())
	case ActionDone:
		return fmt.Sprintf("%.3f %s done serving by %s", r.Clock, r.customer(), r.station())
	case ActionShutdown:
		return fmt.Sprintf("----------%.3f server %d shutdown------", r.Clock, r.StationID)
	case ActionOnline:
		return fmt.Sprintf("----------%.3f server %d online--------", r.Clock, r.StationID)
	default:
		return fmt.Sprintf("%.3f unknown action %q", r.Clock, r.Action)
	}
}
