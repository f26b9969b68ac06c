package sim

import (
	"hash/fnv"
	"math/rand"
)

// === RandomSource ===

// RandomSource supplies every random sample the simulation consumes.
// Durations are >= 0; RestTrigger and CustomerTypeSample are in [0, 1).
type RandomSource interface {
	InterArrivalGap() float64
	ServiceDuration() float64
	RestDuration() float64
	RestTrigger() float64
	CustomerTypeSample() float64
}

// === Subsystem Constants ===

const (
	// SubsystemArrival drives inter-arrival gaps.
	// Uses the master seed directly.
	SubsystemArrival = "arrival"

	SubsystemService      = "service"
	SubsystemRestTrigger  = "rest_trigger"
	SubsystemRestDuration = "rest_duration"
	SubsystemCustomerType = "customer_type"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemArrival: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := p.seed
	if name != SubsystemArrival {
		derivedSeed = p.seed ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === ExponentialSource ===

// ExponentialSource is the production RandomSource: exponentially distributed
// gaps and durations with rates λ (arrival), μ (service) and ρ (rest), and
// uniform samples for the rest trigger and customer type.
type ExponentialSource struct {
	rng         *PartitionedRNG
	arrivalRate float64
	serviceRate float64
	restRate    float64
}

// NewExponentialSource creates an ExponentialSource. arrivalRate and
// serviceRate must be positive; a non-positive restRate yields zero-length rests.
func NewExponentialSource(seed int64, arrivalRate, serviceRate, restRate float64) *ExponentialSource {
	return &ExponentialSource{
		rng:         NewPartitionedRNG(seed),
		arrivalRate: arrivalRate,
		serviceRate: serviceRate,
		restRate:    restRate,
	}
}

func (s *ExponentialSource) InterArrivalGap() float64 {
	return s.rng.ForSubsystem(SubsystemArrival).ExpFloat64() / s.arrivalRate
}

func (s *ExponentialSource) ServiceDuration() float64 {
	return s.rng.ForSubsystem(SubsystemService).ExpFloat64() / s.serviceRate
}

func (s *ExponentialSource) RestDuration() float64 {
	if s.restRate <= 0 {
		return 0
	}
	return s.rng.ForSubsystem(SubsystemRestDuration).ExpFloat64() / s.restRate
}

func (s *ExponentialSource) RestTrigger() float64 {
	return s.rng.ForSubsystem(SubsystemRestTrigger).Float64()
}

func (s *ExponentialSource) CustomerTypeSample() float64 {
	return s.rng.ForSubsystem(SubsystemCustomerType).Float64()
}
