// Defines the Customer struct that models an individual shopper in the simulation.
// Tracks identity, arrival time and queue-selection behavior.

package sim

import "fmt"

// Customer is immutable once created. ID is the tie-break key for
// same-time customer events and the identity used for queue checks.
type Customer struct {
	ID          int     // Unique, monotonically assigned by IDGenerator
	ArrivalTime float64 // Simulation time the customer enters the facility
	Greedy      bool    // Greedy customers join the shortest queue instead of the first free one
}

// WaitTime returns how long the customer has waited when service starts at serveTime.
func (c *Customer) WaitTime(serveTime float64) float64 {
	return serveTime - c.ArrivalTime
}

// String renders the customer as it appears in the event trace, e.g. "3" or "3(greedy)".
func (c *Customer) String() string {
	if c.Greedy {
		return fmt.Sprintf("%d(greedy)", c.ID)
	}
	return fmt.Sprintf("%d", c.ID)
}

// IDGenerator hands out sequential ids starting at 1.
// Each simulation owns its own generators so runs stay independent.
type IDGenerator struct {
	last int
}

// Next returns the next id in the sequence.
func (g *IDGenerator) Next() int {
	g.last++
	return g.last
}

// NewCustomer creates a customer with the next id from g.
func NewCustomer(g *IDGenerator, arrivalTime float64, greedy bool) *Customer {
	return &Customer{
		ID:          g.Next(),
		ArrivalTime: arrivalTime,
		Greedy:      greedy,
	}
}
