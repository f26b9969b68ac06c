// Implements the WaitQueue, which holds the customers waiting for a single station.
// Customers are enqueued when their Waiting event is processed.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of customers waiting to be served.
// Capacity is enforced by the owning Station, not here.
type WaitQueue struct {
	queue []*Customer
}

// Enqueue adds a customer to the back of the wait queue.
func (wq *WaitQueue) Enqueue(c *Customer) {
	if c == nil {
		panic("WaitQueue.Enqueue: customer must not be nil")
	}
	wq.queue = append(wq.queue, c)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of customers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the customer at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Customer {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (wq *WaitQueue) Items() []*Customer {
	return wq.queue
}

// Dequeue removes and returns the customer at the front of the queue.
// Dequeuing from an empty queue is a contract violation and panics.
func (wq *WaitQueue) Dequeue() *Customer {
	if len(wq.queue) == 0 {
		panic("WaitQueue.Dequeue: queue is empty")
	}
	c := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return c
}
