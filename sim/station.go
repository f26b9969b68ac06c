package sim

import "fmt"

// StationKind distinguishes staffed counters from self-checkout units.
type StationKind int

const (
	Staffed StationKind = iota
	SelfCheckout
)

func (k StationKind) String() string {
	switch k {
	case Staffed:
		return "server"
	case SelfCheckout:
		return "self-check"
	default:
		return fmt.Sprintf("StationKind(%d)", int(k))
	}
}

// StationState is the observable state of a station.
type StationState string

const (
	StationIdle    StationState = "idle"
	StationServing StationState = "serving"
	StationResting StationState = "resting"
)

// Station is a service resource: a staffed counter or a self-checkout unit.
//
// Invariants:
//   - occupant == nil iff the station is idle
//   - WaitQ.Len() <= Capacity
//   - a resting station holds no occupant
type Station struct {
	ID       int
	Kind     StationKind
	Capacity int // wait-queue bound; 0 for satellite self-checkout units

	// NextFreeTime is the completion time of the current service, 0 when idle.
	NextFreeTime float64
	Resting      bool
	WaitQ        *WaitQueue

	occupant *Customer
}

// NewStation creates an idle station with an empty wait queue.
func NewStation(id int, kind StationKind, capacity int) *Station {
	if capacity < 0 {
		panic(fmt.Sprintf("NewStation: capacity must be >= 0, got %d", capacity))
	}
	return &Station{
		ID:       id,
		Kind:     kind,
		Capacity: capacity,
		WaitQ:    &WaitQueue{},
	}
}

// IsSelfCheckout reports whether s is a self-checkout unit.
func (s *Station) IsSelfCheckout() bool {
	return s.Kind == SelfCheckout
}

// IsIdle reports whether s is serving nobody.
func (s *Station) IsIdle() bool {
	return s.occupant == nil
}

// Occupant returns the customer being served, or nil.
func (s *Station) Occupant() *Customer {
	return s.occupant
}

// State derives the station's observable state.
func (s *Station) State() StationState {
	switch {
	case s.Resting:
		return StationResting
	case s.occupant != nil:
		return StationServing
	default:
		return StationIdle
	}
}

// CanServe reports whether c can be served immediately: the station must not
// be resting, and it must be idle or due to finish by the time c arrived.
func (s *Station) CanServe(c *Customer) bool {
	if s.Resting {
		return false
	}
	return s.IsIdle() || c.ArrivalTime >= s.NextFreeTime
}

// HasWaitingSpace reports whether another customer fits in the wait queue.
func (s *Station) HasWaitingSpace() bool {
	return s.WaitQ.Len() < s.Capacity
}

// QueueLen returns the current wait-queue length.
func (s *Station) QueueLen() int {
	return s.WaitQ.Len()
}

// IsHead reports whether c is first in line at this station.
func (s *Station) IsHead(c *Customer) bool {
	head := s.WaitQ.Peek()
	return head != nil && head.ID == c.ID
}

// Enqueue appends c to the wait queue. The assignment policy never selects a
// full station, so exceeding capacity panics.
func (s *Station) Enqueue(c *Customer) {
	if !s.HasWaitingSpace() {
		panic(fmt.Sprintf("Station %d: enqueue of customer %d exceeds capacity %d", s.ID, c.ID, s.Capacity))
	}
	s.WaitQ.Enqueue(c)
}

// Dequeue removes the head of the wait queue without serving it.
func (s *Station) Dequeue() *Customer {
	return s.WaitQ.Dequeue()
}

// DequeueAndServe removes the head of the wait queue and starts serving it until completionTime.
func (s *Station) DequeueAndServe(completionTime float64) *Customer {
	c := s.WaitQ.Dequeue()
	s.Serve(c, completionTime)
	return c
}

// Serve marks the station busy with c until completionTime.
func (s *Station) Serve(c *Customer, completionTime float64) {
	if s.Resting {
		panic(fmt.Sprintf("Station %d: cannot serve customer %d while resting", s.ID, c.ID))
	}
	s.occupant = c
	s.NextFreeTime = completionTime
}

// Reset returns the station to idle. The wait queue is untouched.
func (s *Station) Reset() {
	s.occupant = nil
	s.NextFreeTime = 0
}

// Rest marks the station unavailable. Only idle stations may rest.
func (s *Station) Rest() {
	if !s.IsIdle() {
		panic(fmt.Sprintf("Station %d: cannot rest while serving customer %d", s.ID, s.occupant.ID))
	}
	s.Resting = true
}

// Resume brings a resting station back online.
func (s *Station) Resume() {
	s.Resting = false
}

func (s *Station) String() string {
	return fmt.Sprintf("%s %d", s.Kind, s.ID)
}
