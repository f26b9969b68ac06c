package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatcher advances facility state by one event at a time. It borrows the
// stations and shared checkout queue from the owning Simulator.
type Dispatcher struct {
	stations        []*Station // canonical scan order
	checkoutQ       *SharedCheckoutQueue
	checkoutHolder  *Station // first self-checkout unit; holds the private queue mirrored by checkoutQ
	src             RandomSource
	metrics         *Metrics
	restProbability float64
}

// NewDispatcher creates a Dispatcher over stations, which must be in canonical
// scan order (staffed first, then self-checkout, each by ascending id).
func NewDispatcher(stations []*Station, checkoutQ *SharedCheckoutQueue, src RandomSource, metrics *Metrics, restProbability float64) *Dispatcher {
	d := &Dispatcher{
		stations:        stations,
		checkoutQ:       checkoutQ,
		src:             src,
		metrics:         metrics,
		restProbability: restProbability,
	}
	for _, s := range stations {
		if s.IsSelfCheckout() {
			d.checkoutHolder = s
			break
		}
	}
	return d
}

// Handle processes ev and returns the follow-up event, if any.
func (d *Dispatcher) Handle(ev Event) (Event, bool) {
	switch e := ev.(type) {
	case *ArrivedEvent:
		return d.handleArrived(e), true
	case *WaitingEvent:
		d.handleWaiting(e)
		return nil, false
	case *ServedEvent:
		return d.handleServed(e), true
	case *DoneEvent:
		return d.handleDone(e)
	case *StationRestEvent:
		return d.handleStationRest(e), true
	case *StationBackEvent:
		return d.handleStationBack(e)
	case *LeftEvent:
		return nil, false
	default:
		panic(fmt.Sprintf("Dispatcher.Handle: unknown event %T", ev))
	}
}

// handleArrived runs the customer's assignment policy once. Every arrival
// yields exactly one of Served, Waiting or Left.
func (d *Dispatcher) handleArrived(e *ArrivedEvent) Event {
	c := e.Customer
	d.metrics.RecordArrival()

	a, ok := PolicyFor(c).Assign(c, d.stations)
	if !ok {
		d.metrics.RecordNotServed()
		return NewLeftEvent(e.time, c)
	}
	if a.Mode == ModeServed {
		return NewServedEvent(e.time, c, a.Station)
	}
	return NewWaitingEvent(e.time, c, a.Station)
}

// handleWaiting puts the customer in line. Self-checkout customers are also
// recorded in the shared checkout queue.
func (d *Dispatcher) handleWaiting(e *WaitingEvent) {
	e.Station.Enqueue(e.Customer)
	if e.Station.IsSelfCheckout() {
		d.checkoutQ.Push(e.Customer)
	}
}

// handleServed starts service and schedules its completion.
func (d *Dispatcher) handleServed(e *ServedEvent) Event {
	s, c := e.Station, e.Customer
	completionTime := e.time + d.src.ServiceDuration()

	switch {
	case s.IsSelfCheckout() && d.checkoutQ.IsHead(c):
		// queued at self-checkout: leave both the shared ledger and the holder's queue
		d.checkoutQ.Pop(c)
		if got := d.checkoutHolder.Dequeue(); got.ID != c.ID {
			panic(fmt.Sprintf("Dispatcher: self-checkout queue head is customer %d, expected %d", got.ID, c.ID))
		}
		s.Serve(c, completionTime)
	case !s.IsSelfCheckout() && s.IsHead(c):
		s.DequeueAndServe(completionTime)
	default:
		s.Serve(c, completionTime)
	}

	d.metrics.RecordWait(c.WaitTime(e.time))
	return NewDoneEvent(completionTime, c, s)
}

// handleDone frees the station and decides what it does next.
func (d *Dispatcher) handleDone(e *DoneEvent) (Event, bool) {
	s := e.Station
	d.metrics.RecordServed(s.ID)
	s.Reset()

	if s.IsSelfCheckout() {
		next := d.checkoutQ.NextUndispatched()
		if next == nil {
			return nil, false
		}
		// not dequeued until the Served event is processed
		return NewServedEvent(e.time, next, s), true
	}

	if d.src.RestTrigger() < d.restProbability {
		return NewStationRestEvent(e.time, s), true
	}
	if head := s.WaitQ.Peek(); head != nil {
		return NewServedEvent(e.time, head, s), true
	}
	return nil, false
}

func (d *Dispatcher) handleStationRest(e *StationRestEvent) Event {
	s := e.Station
	s.Rest()
	d.metrics.RecordRest(s.ID)
	backAt := e.time + d.src.RestDuration()
	logrus.Infof("Station %d resting until %.3f", s.ID, backAt)
	return NewStationBackEvent(backAt, s)
}

func (d *Dispatcher) handleStationBack(e *StationBackEvent) (Event, bool) {
	s := e.Station
	if !s.IsIdle() {
		panic(fmt.Sprintf("Station %d: back from rest while serving customer %d", s.ID, s.Occupant().ID))
	}
	s.Resume()
	logrus.Infof("Station %d back online at %.3f", s.ID, e.time)
	if head := s.WaitQ.Peek(); head != nil {
		return NewServedEvent(e.time, head, s), true
	}
	return nil, false
}
