package sim

import "fmt"

// SharedCheckoutQueue is the facility-wide FIFO of customers waiting for any
// self-checkout unit. It mirrors the private queue of the first self-checkout
// station, which is the only self-checkout unit with wait capacity.
//
// dispatched counts how many customers at the front already have a Served
// event pending. Two units finishing at the same instant therefore pick
// different customers.
type SharedCheckoutQueue struct {
	queue      WaitQueue
	dispatched int
}

// Push appends c to the back of the shared queue.
func (q *SharedCheckoutQueue) Push(c *Customer) {
	q.queue.Enqueue(c)
}

// Len returns the number of customers in the shared queue, dispatched or not.
func (q *SharedCheckoutQueue) Len() int {
	return q.queue.Len()
}

// Peek returns the head of the shared queue, or nil when empty.
func (q *SharedCheckoutQueue) Peek() *Customer {
	return q.queue.Peek()
}

// IsHead reports whether c is at the front of the shared queue.
func (q *SharedCheckoutQueue) IsHead(c *Customer) bool {
	head := q.queue.Peek()
	return head != nil && head.ID == c.ID
}

// NextUndispatched returns the first customer that has no Served event
// scheduled yet and reserves it. Returns nil if every queued customer is
// already dispatched.
func (q *SharedCheckoutQueue) NextUndispatched() *Customer {
	items := q.queue.Items()
	if q.dispatched >= len(items) {
		return nil
	}
	c := items[q.dispatched]
	q.dispatched++
	return c
}

// Pop removes the head, which must be expected.
func (q *SharedCheckoutQueue) Pop(expected *Customer) *Customer {
	head := q.queue.Peek()
	if head == nil {
		panic(fmt.Sprintf("SharedCheckoutQueue.Pop: queue empty, expected customer %d", expected.ID))
	}
	if head.ID != expected.ID {
		panic(fmt.Sprintf("SharedCheckoutQueue.Pop: head is customer %d, expected %d", head.ID, expected.ID))
	}
	q.queue.Dequeue()
	if q.dispatched > 0 {
		q.dispatched--
	}
	return head
}

func (q *SharedCheckoutQueue) String() string {
	return q.queue.String()
}
