package sim

import "fmt"

// EventKind tags each variant of Event.
type EventKind int

// Kinds are declared in the order used to break ties between events of the
// same customer at the same instant.
const (
	KindArrived EventKind = iota
	KindWaiting
	KindServed
	KindDone
	KindLeft
	KindStationRest
	KindStationBack
)

var eventKindNames = map[EventKind]string{
	KindArrived:     "Arrived",
	KindWaiting:     "Waiting",
	KindServed:      "Served",
	KindDone:        "Done",
	KindLeft:        "Left",
	KindStationRest: "StationRest",
	KindStationBack: "StationBack",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a scheduled occurrence in the simulation. The set of
// implementations is closed; the Dispatcher switches over them exhaustively.
type Event interface {
	Timestamp() float64
	Kind() EventKind
	sealed()
}

// CustomerEvent is implemented by every event that carries a customer.
type CustomerEvent interface {
	Event
	EventCustomer() *Customer
}

// StationEvent is implemented by every event that references a station.
type StationEvent interface {
	Event
	EventStation() *Station
}

// IsStationEvent reports whether e is a station-lifecycle event (rest or back).
func IsStationEvent(e Event) bool {
	k := e.Kind()
	return k == KindStationRest || k == KindStationBack
}

// ArrivedEvent represents a customer entering the facility.
type ArrivedEvent struct {
	time     float64
	Customer *Customer
}

// NewArrivedEvent creates an ArrivedEvent at the customer's arrival time.
func NewArrivedEvent(c *Customer) *ArrivedEvent {
	return &ArrivedEvent{time: c.ArrivalTime, Customer: c}
}

func (e *ArrivedEvent) Timestamp() float64       { return e.time }
func (e *ArrivedEvent) Kind() EventKind          { return KindArrived }
func (e *ArrivedEvent) EventCustomer() *Customer { return e.Customer }
func (e *ArrivedEvent) sealed()                  {}

// LeftEvent represents a customer leaving without service.
type LeftEvent struct {
	time     float64
	Customer *Customer
}

// NewLeftEvent creates a LeftEvent.
func NewLeftEvent(time float64, c *Customer) *LeftEvent {
	return &LeftEvent{time: time, Customer: c}
}

func (e *LeftEvent) Timestamp() float64       { return e.time }
func (e *LeftEvent) Kind() EventKind          { return KindLeft }
func (e *LeftEvent) EventCustomer() *Customer { return e.Customer }
func (e *LeftEvent) sealed()                  {}

// WaitingEvent represents a customer joining a station's wait queue.
type WaitingEvent struct {
	time     float64
	Customer *Customer
	Station  *Station
}

// NewWaitingEvent creates a WaitingEvent.
func NewWaitingEvent(time float64, c *Customer, s *Station) *WaitingEvent {
	return &WaitingEvent{time: time, Customer: c, Station: s}
}

func (e *WaitingEvent) Timestamp() float64       { return e.time }
func (e *WaitingEvent) Kind() EventKind          { return KindWaiting }
func (e *WaitingEvent) EventCustomer() *Customer { return e.Customer }
func (e *WaitingEvent) EventStation() *Station   { return e.Station }
func (e *WaitingEvent) sealed()                  {}

// ServedEvent represents a station starting service for a customer.
type ServedEvent struct {
	time     float64
	Customer *Customer
	Station  *Station
}

// NewServedEvent creates a ServedEvent.
func NewServedEvent(time float64, c *Customer, s *Station) *ServedEvent {
	return &ServedEvent{time: time, Customer: c, Station: s}
}

func (e *ServedEvent) Timestamp() float64       { return e.time }
func (e *ServedEvent) Kind() EventKind          { return KindServed }
func (e *ServedEvent) EventCustomer() *Customer { return e.Customer }
func (e *ServedEvent) EventStation() *Station   { return e.Station }
func (e *ServedEvent) sealed()                  {}

// DoneEvent represents a station completing service for a customer.
type DoneEvent struct {
	time     float64
	Customer *Customer
	Station  *Station
}

// NewDoneEvent creates a DoneEvent.
func NewDoneEvent(time float64, c *Customer, s *Station) *DoneEvent {
	return &DoneEvent{time: time, Customer: c, Station: s}
}

func (e *DoneEvent) Timestamp() float64       { return e.time }
func (e *DoneEvent) Kind() EventKind          { return KindDone }
func (e *DoneEvent) EventCustomer() *Customer { return e.Customer }
func (e *DoneEvent) EventStation() *Station   { return e.Station }
func (e *DoneEvent) sealed()                  {}

// StationRestEvent represents a staffed station going on a break.
type StationRestEvent struct {
	time    float64
	Station *Station
}

// NewStationRestEvent creates a StationRestEvent.
func NewStationRestEvent(time float64, s *Station) *StationRestEvent {
	return &StationRestEvent{time: time, Station: s}
}

func (e *StationRestEvent) Timestamp() float64     { return e.time }
func (e *StationRestEvent) Kind() EventKind        { return KindStationRest }
func (e *StationRestEvent) EventStation() *Station { return e.Station }
func (e *StationRestEvent) sealed()                {}

// StationBackEvent represents a resting station coming back online.
type StationBackEvent struct {
	time    float64
	Station *Station
}

// NewStationBackEvent creates a StationBackEvent.
func NewStationBackEvent(time float64, s *Station) *StationBackEvent {
	return &StationBackEvent{time: time, Station: s}
}

func (e *StationBackEvent) Timestamp() float64     { return e.time }
func (e *StationBackEvent) Kind() EventKind        { return KindStationBack }
func (e *StationBackEvent) EventStation() *Station { return e.Station }
func (e *StationBackEvent) sealed()                {}

// Before reports whether a must be processed before b.
//
// Order by: time → station-lifecycle events first → station id (between
// station events) or customer id (between customer events) → kind.
func Before(a, b Event) bool {
	if a.Timestamp() != b.Timestamp() {
		return a.Timestamp() < b.Timestamp()
	}

	aStation, bStation := IsStationEvent(a), IsStationEvent(b)
	switch {
	case aStation && bStation:
		ai, bi := a.(StationEvent).EventStation().ID, b.(StationEvent).EventStation().ID
		if ai != bi {
			return ai < bi
		}
	case aStation != bStation:
		return aStation
	default:
		ai, bi := a.(CustomerEvent).EventCustomer().ID, b.(CustomerEvent).EventCustomer().ID
		if ai != bi {
			return ai < bi
		}
	}
	return a.Kind() < b.Kind()
}
