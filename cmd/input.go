package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	sim "github.com/KenGondor/CS2030/sim"
)

// recordFields lists the input record's values in order.
var recordFields = []string{
	"seed", "servers", "self-checkouts", "queue capacity", "customers",
	"arrival rate", "service rate", "rest rate", "rest probability", "greedy probability",
}

// ParseRecord reads the whitespace-separated input record:
//
//	seed servers selfCheckouts qmax customers λ μ ρ restProbability greedyProbability
func ParseRecord(r io.Reader) (sim.Config, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	words := make([]string, 0, len(recordFields))
	for len(words) < len(recordFields) && sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return sim.Config{}, fmt.Errorf("read input record: %w", err)
	}
	if len(words) < len(recordFields) {
		return sim.Config{}, fmt.Errorf("input record has %d values, want %d (missing %s)",
			len(words), len(recordFields), recordFields[len(words)])
	}

	var cfg sim.Config
	ints := []*int{&cfg.StaffedStations, &cfg.SelfCheckouts, &cfg.QueueCapacity, &cfg.Customers}
	floats := []*float64{&cfg.ArrivalRate, &cfg.ServiceRate, &cfg.RestRate, &cfg.RestProbability, &cfg.GreedyProbability}

	seed, err := strconv.ParseInt(words[0], 10, 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("parse %s %q: %w", recordFields[0], words[0], err)
	}
	cfg.Seed = seed
	for i, p := range ints {
		v, err := strconv.Atoi(words[1+i])
		if err != nil {
			return sim.Config{}, fmt.Errorf("parse %s %q: %w", recordFields[1+i], words[1+i], err)
		}
		*p = v
	}
	for i, p := range floats {
		idx := 1 + len(ints) + i
		v, err := strconv.ParseFloat(words[idx], 64)
		if err != nil {
			return sim.Config{}, fmt.Errorf("parse %s %q: %w", recordFields[idx], words[idx], err)
		}
		*p = v
	}
	return cfg, nil
}

// readRecordArg parses the record from the named file, or from stdin when name is "-".
func readRecordArg(name string, stdin io.Reader) (sim.Config, error) {
	if name == "-" {
		return ParseRecord(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return sim.Config{}, fmt.Errorf("open input %s: %w", name, err)
	}
	defer f.Close()
	return ParseRecord(f)
}
