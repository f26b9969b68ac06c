package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenGondor/CS2030/sim/internal/testutil"
	"github.com/KenGondor/CS2030/sim/trace"
)

func TestSimulator_SingleCounter_SecondCustomerWaits(t *testing.T) {
	// GIVEN one counter with room for one waiting customer, arrivals 0.5 apart and 2.0 services
	src := &testutil.ScriptedSource{Gaps: []float64{0.5}, Services: []float64{2.0}}
	s := newTestSimulator(t, testConfig(1, 0, 1, 2), src)

	// WHEN the simulation runs to completion
	require.NoError(t, s.Run())

	// THEN customer 2 waits for customer 1 and is served at 2.0
	assert.Equal(t, []string{
		"0.000 1 arrives",
		"0.000 1 served by server 1",
		"0.500 2 arrives",
		"0.500 2 waits to be served by server 1",
		"2.000 1 done serving by server 1",
		"2.000 2 served by server 1",
		"4.000 2 done serving by server 1",
	}, s.Trace.Lines())
	assert.Equal(t, "[0.750 2 0]", s.Metrics.Summary())
	assert.Equal(t, 4.0, s.Metrics.SimEndedTime)
}

func TestSimulator_ZeroCapacity_SecondCustomerLeaves(t *testing.T) {
	src := &testutil.ScriptedSource{Gaps: []float64{0.1}, Services: []float64{5.0}}
	s := newTestSimulator(t, testConfig(1, 0, 0, 2), src)

	require.NoError(t, s.Run())

	assert.Contains(t, s.Trace.Lines(), "0.100 2 leaves")
	assert.Equal(t, "[0.000 1 1]", s.Metrics.Summary())
	assert.Equal(t, 1, src.ServiceCalls(), "a customer who leaves is never sampled a service time")
}

func TestSimulator_SelfCheckout_SharedQueueServedByAnyUnit(t *testing.T) {
	// GIVEN two self-checkout units sharing a queue of two
	src := &testutil.ScriptedSource{Gaps: []float64{0.1}, Services: []float64{1.0}}
	s := newTestSimulator(t, testConfig(0, 2, 2, 4), src)

	// WHEN four customers arrive 0.1 apart
	require.NoError(t, s.Run())

	// THEN the two overflow customers queue at unit 1 and are served by whichever unit frees first
	assert.Equal(t, []string{
		"0.000 1 arrives",
		"0.000 1 served by self-check 1",
		"0.100 2 arrives",
		"0.100 2 served by self-check 2",
		"0.200 3 arrives",
		"0.200 3 waits to be served by self-check 1",
		"0.300 4 arrives",
		"0.300 4 waits to be served by self-check 1",
		"1.000 1 done serving by self-check 1",
		"1.000 3 served by self-check 1",
		"1.100 2 done serving by self-check 2",
		"1.100 4 served by self-check 2",
		"2.000 3 done serving by self-check 1",
		"2.100 4 done serving by self-check 2",
	}, s.Trace.Lines())
	assert.Equal(t, 4, s.Metrics.Served)
	assert.InDelta(t, 0.4, s.Metrics.AverageWait(), 1e-9)
	assert.Equal(t, 0, s.CheckoutQ.Len())
}

func TestSimulator_SelfCheckout_SameInstantCompletionsDispatchDistinctCustomers(t *testing.T) {
	// GIVEN arrivals at 0, 0, 0.5, 0.5 so both units finish together at 1.0 with two queued
	src := &testutil.ScriptedSource{Gaps: []float64{0, 0.5, 0}, Services: []float64{1.0}}
	s := newTestSimulator(t, testConfig(0, 2, 2, 4), src)

	// WHEN the simulation runs
	require.NotPanics(t, func() { require.NoError(t, s.Run()) })

	// THEN each queued customer is served exactly once, by a different unit
	lines := s.Trace.Lines()
	assert.Contains(t, lines, "1.000 3 served by self-check 1")
	assert.Contains(t, lines, "1.000 4 served by self-check 2")
	assert.Equal(t, "[0.250 4 0]", s.Metrics.Summary())
	assert.Equal(t, 0, s.CheckoutQ.Len())
	assert.Equal(t, 0, s.Stations[0].QueueLen())
}

func TestSimulator_RestingCounter_EventSequence(t *testing.T) {
	// GIVEN a counter that always rests for 1.0 after each 2.0 service
	src := &testutil.ScriptedSource{
		Gaps:         []float64{0.5},
		Services:     []float64{2.0},
		Rests:        []float64{1.0},
		RestTriggers: []float64{0},
	}
	cfg := testConfig(1, 0, 2, 2)
	cfg.RestProbability = 0.5
	s := newTestSimulator(t, cfg, src)

	// WHEN stepping through every event
	s.seedArrivals()
	var kinds []EventKind
	var times []float64
	for s.EventQueue.Len() > 0 {
		ev := s.EventQueue.Peek()
		kinds = append(kinds, ev.Kind())
		times = append(times, ev.Timestamp())
		require.True(t, s.Step())
	}

	// THEN the waiting customer is served only once the counter is back online
	assert.Equal(t, []EventKind{
		KindArrived, KindServed, KindArrived, KindWaiting, KindDone,
		KindStationRest, KindStationBack, KindServed, KindDone,
		KindStationRest, KindStationBack,
	}, kinds)
	assert.Equal(t, []float64{0, 0, 0.5, 0.5, 2, 2, 3, 3, 5, 5, 6}, times)
	assert.Equal(t, 2, s.Metrics.StationRests[1])
	assert.Equal(t, "[1.250 2 0]", s.Metrics.Summary())
	assert.False(t, s.Step(), "nothing left to process")
}

func TestSimulator_RestingCounter_StationLinesOnlyAtLevelAll(t *testing.T) {
	src := &testutil.ScriptedSource{Services: []float64{1.0}, Rests: []float64{0.5}, RestTriggers: []float64{0}}
	cfg := testConfig(1, 0, 1, 1)
	cfg.RestProbability = 1

	all := newTestSimulator(t, cfg, src)
	require.NoError(t, all.Run())
	assert.Contains(t, all.Trace.Lines(), "----------1.000 server 1 shutdown------")
	assert.Contains(t, all.Trace.Lines(), "----------1.500 server 1 online--------")

	src = &testutil.ScriptedSource{Services: []float64{1.0}, Rests: []float64{0.5}, RestTriggers: []float64{0}}
	customersOnly, err := NewSimulator(cfg, src, trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelCustomers}))
	require.NoError(t, err)
	require.NoError(t, customersOnly.Run())
	assert.Equal(t, customerLines(all.Trace), customersOnly.Trace.Lines())
}

func TestSimulator_ArrivalDuringRest_Waits(t *testing.T) {
	// GIVEN a counter resting from 1.0 to 3.0 and a second customer arriving at 1.5
	src := &testutil.ScriptedSource{
		Gaps:         []float64{1.5},
		Services:     []float64{1.0},
		Rests:        []float64{2.0},
		RestTriggers: []float64{0, 1},
	}
	cfg := testConfig(1, 0, 1, 2)
	cfg.RestProbability = 0.5
	s := newTestSimulator(t, cfg, src)

	require.NoError(t, s.Run())

	lines := s.Trace.Lines()
	assert.Contains(t, lines, "1.500 2 waits to be served by server 1")
	assert.Contains(t, lines, "3.000 2 served by server 1")
	assert.InDelta(t, 0.75, s.Metrics.AverageWait(), 1e-9)
}

func TestSimulator_GreedyCustomer_JoinsShortestQueue(t *testing.T) {
	// GIVEN two busy counters and customer 3 already queued at counter 1
	src := &testutil.ScriptedSource{
		Gaps:          []float64{0.1},
		Services:      []float64{10.0},
		CustomerTypes: []float64{0.9, 0.9, 0.9, 0.1},
	}
	cfg := testConfig(2, 0, 2, 4)
	cfg.GreedyProbability = 0.5
	s := newTestSimulator(t, cfg, src)

	require.NoError(t, s.Run())

	// THEN the patient customer takes the first counter with room, the greedy one the shortest queue
	lines := s.Trace.Lines()
	assert.Contains(t, lines, "0.200 3 waits to be served by server 1")
	assert.Contains(t, lines, "0.300 4(greedy) arrives")
	assert.Contains(t, lines, "0.300 4(greedy) waits to be served by server 2")
}

func TestSimulator_ZeroCustomers(t *testing.T) {
	s := newTestSimulator(t, testConfig(1, 1, 1, 0), &testutil.ScriptedSource{})

	require.NoError(t, s.Run())

	assert.Empty(t, s.Trace.Records)
	assert.Equal(t, "[0.000 0 0]", s.Metrics.Summary())
	assert.Equal(t, 0, s.Processed())
}

func TestNewSimulator_InvalidConfig_ReturnsError(t *testing.T) {
	_, err := NewSimulator(testConfig(0, 0, 1, 1), &testutil.ScriptedSource{}, nil)
	assert.Error(t, err)
}

func TestNewSimulator_BuildsFacility(t *testing.T) {
	src := &testutil.ScriptedSource{Gaps: []float64{0.5, 0.25}}
	s, err := NewSimulator(testConfig(2, 3, 4, 3), src, nil)
	require.NoError(t, err)

	// staffed first, then self-checkout; only the first self-checkout holds a queue
	require.Len(t, s.Stations, 5)
	for i, st := range s.Stations {
		assert.Equal(t, i+1, st.ID)
	}
	assert.Equal(t, Staffed, s.Stations[1].Kind)
	assert.Equal(t, SelfCheckout, s.Stations[2].Kind)
	assert.Equal(t, 4, s.Stations[2].Capacity)
	assert.Equal(t, 0, s.Stations[3].Capacity)
	assert.Equal(t, 0, s.Stations[4].Capacity)
	assert.Equal(t, []float64{0, 0.5, 0.75}, s.Arrivals)
	assert.Equal(t, trace.TraceLevelNone, s.Trace.Config.Level)
}

func TestSimulator_Step_ClockRegression_Panics(t *testing.T) {
	s := newTestSimulator(t, testConfig(1, 0, 1, 0), &testutil.ScriptedSource{})
	s.Clock = 5
	s.Schedule(NewLeftEvent(1, &Customer{ID: 1, ArrivalTime: 1}))

	assert.Panics(t, func() { s.Step() })
}

func TestSimulator_Run_StreamsTraceToWriter(t *testing.T) {
	var buf bytes.Buffer
	src := &testutil.ScriptedSource{Services: []float64{1.0}}
	s, err := NewSimulator(testConfig(1, 0, 1, 1), src, trace.NewSimulationTrace(trace.TraceConfig{Out: &buf}))
	require.NoError(t, err)

	require.NoError(t, s.Run())

	assert.Equal(t, "0.000 1 arrives\n0.000 1 served by server 1\n1.000 1 done serving by server 1\n", buf.String())
}

// loadedConfig is a busy facility exercising every event kind.
func loadedConfig(seed int64) Config {
	return Config{
		Seed:              seed,
		StaffedStations:   2,
		SelfCheckouts:     3,
		QueueCapacity:     2,
		Customers:         400,
		ArrivalRate:       2.5,
		ServiceRate:       0.6,
		RestRate:          0.5,
		RestProbability:   0.3,
		GreedyProbability: 0.4,
	}
}

func runLoaded(t *testing.T, seed int64) *Simulator {
	t.Helper()
	cfg := loadedConfig(seed)
	s := newTestSimulator(t, cfg, NewExponentialSource(cfg.Seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate))
	require.NoError(t, s.Run())
	return s
}

func TestSimulator_Invariants_HoldAtEveryStep(t *testing.T) {
	cfg := loadedConfig(7)
	s := newTestSimulator(t, cfg, NewExponentialSource(cfg.Seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate))
	s.seedArrivals()

	for s.Step() {
		for _, st := range s.Stations {
			require.LessOrEqual(t, st.QueueLen(), st.Capacity, "%s over capacity at %.3f", st, s.Clock)
			require.False(t, st.Resting && !st.IsIdle(), "%s serving while resting", st)
		}
		require.LessOrEqual(t, s.CheckoutQ.Len(), cfg.QueueCapacity)
	}

	// conservation: every arrival is either served or turned away
	assert.Equal(t, cfg.Customers, s.Metrics.Arrivals)
	assert.Equal(t, cfg.Customers, s.Metrics.Served+s.Metrics.NotServed)
	assert.Len(t, s.Metrics.WaitTimes, s.Metrics.Served)
	for _, w := range s.Metrics.WaitTimes {
		assert.GreaterOrEqual(t, w, 0.0)
	}
}

func TestSimulator_TraceRoundTrip_WaitersServedWhereTheyQueued(t *testing.T) {
	s := runLoaded(t, 11)

	waitedAt := map[int]trace.EventRecord{}
	served := map[int]int{}
	done := map[int]int{}
	last := 0.0
	for _, r := range s.Trace.Records {
		require.GreaterOrEqual(t, r.Clock, last, "trace is in time order")
		last = r.Clock
		switch r.Action {
		case trace.ActionWaits:
			waitedAt[r.CustomerID] = r
		case trace.ActionServed:
			served[r.CustomerID]++
			if w, ok := waitedAt[r.CustomerID]; ok {
				if w.SelfCheckout {
					assert.True(t, r.SelfCheckout, "customer %d queued for self-checkout", r.CustomerID)
				} else {
					assert.Equal(t, w.StationID, r.StationID, "customer %d", r.CustomerID)
				}
			}
		case trace.ActionDone:
			done[r.CustomerID]++
		}
	}
	for id := range waitedAt {
		assert.Equal(t, 1, served[id], "customer %d who waited is served once", id)
	}
	for id, n := range served {
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, done[id], "customer %d", id)
	}
	assert.NotEmpty(t, waitedAt)
	assert.Positive(t, trace.Summarize(s.Trace).Rests)
}

func TestSimulator_Determinism_SameSeedSameTrace(t *testing.T) {
	a := runLoaded(t, 42)
	b := runLoaded(t, 42)
	c := runLoaded(t, 43)

	assert.Equal(t, a.Trace.Lines(), b.Trace.Lines())
	assert.Equal(t, a.Metrics.Summary(), b.Metrics.Summary())
	assert.NotEqual(t, a.Trace.Lines(), c.Trace.Lines())
}

func TestSimulator_Topologies_ConserveCustomersAndDrain(t *testing.T) {
	topologies := map[string]Config{
		"staffed only":       {StaffedStations: 3, QueueCapacity: 2},
		"self-checkout only": {SelfCheckouts: 3, QueueCapacity: 2},
		"no waiting room":    {StaffedStations: 2, SelfCheckouts: 2, QueueCapacity: 0},
		"many self-checkout": {StaffedStations: 1, SelfCheckouts: 8, QueueCapacity: 4},
	}
	for name, topo := range topologies {
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 20; seed++ {
				// GIVEN a busy facility with rests and greedy customers
				cfg := topo
				cfg.Seed = seed
				cfg.Customers = 150
				cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate = 2.0, 0.7, 0.5
				cfg.RestProbability, cfg.GreedyProbability = 0.3, 0.5
				s := newTestSimulator(t, cfg, NewExponentialSource(seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate))

				// WHEN it runs to completion
				require.NotPanics(t, func() { require.NoError(t, s.Run()) }, "seed %d", seed)

				// THEN every customer is accounted for and the facility is empty
				require.Equal(t, cfg.Customers, s.Metrics.Served+s.Metrics.NotServed, "seed %d", seed)
				for _, st := range s.Stations {
					require.True(t, st.IsIdle(), "%s busy at end, seed %d", st, seed)
					require.Equal(t, 0, st.QueueLen(), "%s queue not drained, seed %d", st, seed)
				}
				require.Equal(t, 0, s.CheckoutQ.Len(), "seed %d", seed)
			}
		})
	}
}
