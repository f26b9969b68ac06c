package sim

import (
	"errors"
	"fmt"
)

// Config holds every parameter of a simulation run.
// Field order matches the whitespace-separated input record.
type Config struct {
	Seed int64 `yaml:"seed" json:"seed"`
	// StaffedStations and SelfCheckouts size the facility.
	StaffedStations int `yaml:"servers" json:"servers"`
	SelfCheckouts   int `yaml:"self_checkouts" json:"self_checkouts"`
	// QueueCapacity bounds each staffed station's queue and the shared self-checkout queue.
	QueueCapacity int `yaml:"queue_capacity" json:"queue_capacity"`
	Customers     int `yaml:"customers" json:"customers"`
	// ArrivalRate (λ), ServiceRate (μ) and RestRate (ρ) parameterize the exponential samples.
	ArrivalRate       float64 `yaml:"arrival_rate" json:"arrival_rate"`
	ServiceRate       float64 `yaml:"service_rate" json:"service_rate"`
	RestRate          float64 `yaml:"rest_rate" json:"rest_rate"`
	RestProbability   float64 `yaml:"rest_probability" json:"rest_probability"`
	GreedyProbability float64 `yaml:"greedy_probability" json:"greedy_probability"`
}

// DefaultConfig returns a small single-counter facility.
func DefaultConfig() Config {
	return Config{
		Seed:            1,
		StaffedStations: 1,
		QueueCapacity:   1,
		Customers:       10,
		ArrivalRate:     1.0,
		ServiceRate:     1.0,
	}
}

// Validate checks that cfg describes a runnable facility.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.StaffedStations < 0 {
		errs = append(errs, fmt.Errorf("servers must be >= 0, got %d", cfg.StaffedStations))
	}
	if cfg.SelfCheckouts < 0 {
		errs = append(errs, fmt.Errorf("self_checkouts must be >= 0, got %d", cfg.SelfCheckouts))
	}
	if cfg.StaffedStations+cfg.SelfCheckouts == 0 {
		errs = append(errs, errors.New("at least one station is required"))
	}
	if cfg.QueueCapacity < 0 {
		errs = append(errs, fmt.Errorf("queue_capacity must be >= 0, got %d", cfg.QueueCapacity))
	}
	if cfg.Customers < 0 {
		errs = append(errs, fmt.Errorf("customers must be >= 0, got %d", cfg.Customers))
	}
	if cfg.ArrivalRate <= 0 {
		errs = append(errs, fmt.Errorf("arrival_rate must be > 0, got %v", cfg.ArrivalRate))
	}
	if cfg.ServiceRate <= 0 {
		errs = append(errs, fmt.Errorf("service_rate must be > 0, got %v", cfg.ServiceRate))
	}
	if cfg.RestRate < 0 {
		errs = append(errs, fmt.Errorf("rest_rate must be >= 0, got %v", cfg.RestRate))
	}
	if cfg.RestProbability < 0 || cfg.RestProbability > 1 {
		errs = append(errs, fmt.Errorf("rest_probability must be in [0,1], got %v", cfg.RestProbability))
	}
	if cfg.GreedyProbability < 0 || cfg.GreedyProbability > 1 {
		errs = append(errs, fmt.Errorf("greedy_probability must be in [0,1], got %v", cfg.GreedyProbability))
	}
	return errors.Join(errs...)
}
