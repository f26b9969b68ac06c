// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/KenGondor/CS2030/sim/trace"
)

// Simulator is the core object that holds simulation time, facility state, and the event loop.
type Simulator struct {
	Clock float64
	// EventQueue has all pending events; only the run loop pops from it.
	EventQueue *EventQueue
	// Stations in canonical scan order: staffed by ascending id, then self-checkout.
	Stations []*Station
	// CheckoutQ is the shared self-checkout ledger.
	CheckoutQ  *SharedCheckoutQueue
	Metrics    *Metrics
	Trace      *trace.SimulationTrace
	Dispatcher *Dispatcher
	// Arrivals are the precomputed arrival timestamps, ascending.
	Arrivals []float64

	config     Config
	src        RandomSource
	customerID IDGenerator
	stationID  IDGenerator
	processed  int
}

// NewSimulator builds the facility described by cfg and precomputes arrival
// timestamps from src. The first customer arrives at t=0.
// tr may be nil, in which case nothing is traced.
func NewSimulator(cfg Config, src RandomSource, tr *trace.SimulationTrace) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if tr == nil {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelNone})
	}

	s := &Simulator{
		EventQueue: NewEventQueue(),
		CheckoutQ:  &SharedCheckoutQueue{},
		Metrics:    NewMetrics(),
		Trace:      tr,
		Arrivals:   make([]float64, 0, cfg.Customers),
		config:     cfg,
		src:        src,
	}

	for i := 0; i < cfg.StaffedStations; i++ {
		s.Stations = append(s.Stations, NewStation(s.stationID.Next(), Staffed, cfg.QueueCapacity))
	}
	// The first self-checkout keeps the queue shared by all self-checkout units.
	for i := 0; i < cfg.SelfCheckouts; i++ {
		capacity := 0
		if i == 0 {
			capacity = cfg.QueueCapacity
		}
		s.Stations = append(s.Stations, NewStation(s.stationID.Next(), SelfCheckout, capacity))
	}

	s.Dispatcher = NewDispatcher(s.Stations, s.CheckoutQ, src, s.Metrics, cfg.RestProbability)

	t := 0.0
	for i := 0; i < cfg.Customers; i++ {
		s.Arrivals = append(s.Arrivals, t)
		t += src.InterArrivalGap()
	}

	return s, nil
}

// Config returns the configuration the simulator was built with.
func (sim *Simulator) Config() Config {
	return sim.config
}

// Processed returns the number of events handled so far.
func (sim *Simulator) Processed() int {
	return sim.processed
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

// seedArrivals creates one customer per precomputed arrival, sampling its
// type in arrival order, and schedules the Arrived events.
func (sim *Simulator) seedArrivals() {
	for _, at := range sim.Arrivals {
		greedy := sim.src.CustomerTypeSample() < sim.config.GreedyProbability
		c := NewCustomer(&sim.customerID, at, greedy)
		sim.Schedule(NewArrivedEvent(c))
	}
}

// Run seeds the arrivals and processes events until none remain.
func (sim *Simulator) Run() error {
	logrus.Infof("Starting simulation: %d servers, %d self-checkouts, qmax=%d, %d customers",
		sim.config.StaffedStations, sim.config.SelfCheckouts, sim.config.QueueCapacity, sim.config.Customers)

	sim.seedArrivals()
	for sim.EventQueue.Len() > 0 {
		sim.Step()
	}
	sim.Metrics.SimEndedTime = sim.Clock

	logrus.Infof("Simulation ended at %.3f after %d events", sim.Clock, sim.processed)
	return sim.Trace.Err()
}

// Step processes the next pending event and schedules its follow-up.
// Returns false if there was nothing to process.
func (sim *Simulator) Step() bool {
	ev := sim.EventQueue.PopNext()
	if ev == nil {
		return false
	}
	if ev.Timestamp() < sim.Clock {
		panic(fmt.Sprintf("Simulator.Step: %s at %.6f precedes clock %.6f", ev.Kind(), ev.Timestamp(), sim.Clock))
	}
	sim.Clock = ev.Timestamp()
	sim.processed++
	logrus.Debugf("[%.3f] Executing %s", sim.Clock, ev.Kind())

	sim.Trace.Record(Record(ev))
	if next, ok := sim.Dispatcher.Handle(ev); ok {
		sim.Schedule(next)
	}
	return true
}

// Record converts an event into its trace record.
func Record(ev Event) trace.EventRecord {
	r := trace.EventRecord{Clock: ev.Timestamp(), Action: actionFor(ev.Kind())}
	if ce, ok := ev.(CustomerEvent); ok {
		r.CustomerID = ce.EventCustomer().ID
		r.Greedy = ce.EventCustomer().Greedy
	}
	if se, ok := ev.(StationEvent); ok {
		r.StationID = se.EventStation().ID
		r.SelfCheckout = se.EventStation().IsSelfCheckout()
	}
	return r
}

func actionFor(k EventKind) trace.Action {
	switch k {
	case KindArrived:
		return trace.ActionArrives
	case KindLeft:
		return trace.ActionLeaves
	case KindWaiting:
		return trace.ActionWaits
	case KindServed:
		return trace.ActionServed
	case KindDone:
		return trace.ActionDone
	case KindStationRest:
		return trace.ActionShutdown
	case KindStationBack:
		return trace.ActionOnline
	default:
		panic(fmt.Sprintf("actionFor: unknown event kind %s", k))
	}
}
