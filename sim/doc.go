// Package sim provides the discrete-event simulation engine for a checkout
// facility with staffed counters and self-checkout units.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the closed set of event variants and their total order (Before)
//   - dispatcher.go: per-event state transitions and follow-up events
//   - assignment.go: where an arriving customer goes (FirstFit vs ShortestQueue)
//   - simulator.go: facility construction and the event loop
//
// # State Machines
//
// Customer: arrived → served | waiting → served → done, or arrived → left.
// Station: idle → serving → idle, with idle → resting → idle entered only
// right after a staffed station completes a service.
//
// # Self-checkout
//
// All self-checkout units share one logical queue. The first self-checkout
// station holds it as its private wait queue and SharedCheckoutQueue mirrors
// it as a facility-wide ledger; the other units have no wait capacity.
//
// # Randomness
//
// RandomSource is the only source of randomness. ExponentialSource derives an
// isolated stream per sample kind from one seed (see PartitionedRNG), so a run
// is fully reproducible from its Config.
package sim
