package sim

import "fmt"

// AssignmentMode says whether an arriving customer is served now or joins a queue.
type AssignmentMode int

const (
	ModeServed AssignmentMode = iota
	ModeWaiting
)

func (m AssignmentMode) String() string {
	switch m {
	case ModeServed:
		return "served"
	case ModeWaiting:
		return "waiting"
	default:
		return fmt.Sprintf("AssignmentMode(%d)", int(m))
	}
}

// Assignment is the outcome of an assignment policy for one customer.
type Assignment struct {
	Station *Station
	Mode    AssignmentMode
}

// AssignmentPolicy picks a station for an arriving customer.
// stations are given in canonical scan order: staffed stations by ascending
// id, then self-checkout stations by ascending id.
// ok is false when no station can serve or queue the customer.
type AssignmentPolicy interface {
	Assign(c *Customer, stations []*Station) (a Assignment, ok bool)
}

// FirstFit is the patient-customer policy: the first station that can serve,
// else the first station with wait-queue space.
type FirstFit struct{}

// Assign implements AssignmentPolicy for FirstFit.
func (FirstFit) Assign(c *Customer, stations []*Station) (Assignment, bool) {
	if s := firstServable(c, stations); s != nil {
		return Assignment{Station: s, Mode: ModeServed}, true
	}
	for _, s := range stations {
		if s.HasWaitingSpace() {
			return Assignment{Station: s, Mode: ModeWaiting}, true
		}
	}
	return Assignment{}, false
}

// ShortestQueue is the greedy-customer policy: the first station that can
// serve, else the station with the shortest wait queue that still has space.
// Ties are broken by first occurrence in scan order (lowest index).
type ShortestQueue struct{}

// Assign implements AssignmentPolicy for ShortestQueue.
func (ShortestQueue) Assign(c *Customer, stations []*Station) (Assignment, bool) {
	if s := firstServable(c, stations); s != nil {
		return Assignment{Station: s, Mode: ModeServed}, true
	}
	var target *Station
	for _, s := range stations {
		if !s.HasWaitingSpace() {
			continue
		}
		if target == nil || s.QueueLen() < target.QueueLen() {
			target = s
		}
	}
	if target == nil {
		return Assignment{}, false
	}
	return Assignment{Station: target, Mode: ModeWaiting}, true
}

// PolicyFor returns the assignment policy matching the customer's behavior.
func PolicyFor(c *Customer) AssignmentPolicy {
	if c.Greedy {
		return ShortestQueue{}
	}
	return FirstFit{}
}

func firstServable(c *Customer, stations []*Station) *Station {
	for _, s := range stations {
		if s.CanServe(c) {
			return s
		}
	}
	return nil
}
