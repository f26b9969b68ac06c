package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/KenGondor/CS2030/sim"
	"github.com/KenGondor/CS2030/sim/trace"
)

var (
	// CLI flags for the facility
	seed            int64   // Seed for all random samples
	servers         int     // Number of staffed counters
	selfCheckouts   int     // Number of self-checkout units
	queueCapacity   int     // Wait-queue bound per station
	customers       int     // Number of arrivals
	arrivalRate     float64 // λ
	serviceRate     float64 // μ
	restRate        float64 // ρ
	restProbability float64 // Probability a counter rests after a service
	greedyProb      float64 // Probability a customer is greedy

	// CLI flags for run control
	logLevel    string // Log verbosity level
	configPath  string // Facilities YAML file
	facility    string // Facility name within configPath
	traceLevel  string // Event trace verbosity
	resultsPath string // Optional JSON results output
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "checkout-sim",
	Short: "Discrete-event simulator for a checkout facility",
}

// runCmd executes the simulation using parameters from the input record, config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run [input-file | -]",
	Short: "Run the checkout simulation",
	Long: "Run the simulation and print one trace line per customer event followed by\n" +
		"[average-wait served not-served]. The optional argument is a file (or - for stdin)\n" +
		"holding: seed servers self-checkouts qmax customers λ μ ρ rest-prob greedy-prob.\n" +
		"Without an argument the record is read from stdin when stdin is a file or pipe.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		cfg, err := resolveConfig(cmd.Flags(), args, cmd.InOrStdin())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		if err := runSimulation(cfg, trace.TraceLevel(traceLevel), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveConfig merges, lowest precedence first: built-in defaults, the
// facility file, the input record, and explicitly set flags.
func resolveConfig(flags *pflag.FlagSet, args []string, stdin io.Reader) (sim.Config, error) {
	cfg := sim.DefaultConfig()

	if configPath != "" {
		fileCfg, err := GetFacilityConfig(configPath, facility)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = fileCfg
	}

	if len(args) == 0 && stdinIsRedirected(stdin) {
		args = []string{"-"}
	}
	if len(args) == 1 {
		recordCfg, err := readRecordArg(args[0], stdin)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = recordCfg
	}

	overrides := []struct {
		name  string
		apply func()
	}{
		{"seed", func() { cfg.Seed = seed }},
		{"servers", func() { cfg.StaffedStations = servers }},
		{"self-checkouts", func() { cfg.SelfCheckouts = selfCheckouts }},
		{"queue-capacity", func() { cfg.QueueCapacity = queueCapacity }},
		{"customers", func() { cfg.Customers = customers }},
		{"arrival-rate", func() { cfg.ArrivalRate = arrivalRate }},
		{"service-rate", func() { cfg.ServiceRate = serviceRate }},
		{"rest-rate", func() { cfg.RestRate = restRate }},
		{"rest-prob", func() { cfg.RestProbability = restProbability }},
		{"greedy-prob", func() { cfg.GreedyProbability = greedyProb }},
	}
	for _, o := range overrides {
		if flags.Changed(o.name) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// stdinIsRedirected reports whether stdin is a file or pipe rather than a terminal.
func stdinIsRedirected(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}

// runSimulation runs one simulation, streaming the trace and summary to out.
func runSimulation(cfg sim.Config, level trace.TraceLevel, out io.Writer) error {
	logrus.Infof("Starting simulation with seed=%d, λ=%v, μ=%v, ρ=%v, Pr=%v, Pg=%v",
		cfg.Seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate, cfg.RestProbability, cfg.GreedyProbability)

	src := sim.NewExponentialSource(cfg.Seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.RestRate)
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: level, Out: out})

	s, err := sim.NewSimulator(cfg, src, tr)
	if err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}
	if err := s.Metrics.Print(out); err != nil {
		return fmt.Errorf("print summary: %w", err)
	}

	if resultsPath != "" {
		if err := s.Metrics.SaveResults(resultsPath, uuid.NewString(), cfg); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to fs.
func registerRunFlags(fs *pflag.FlagSet) {
	defaults := sim.DefaultConfig()

	fs.Int64Var(&seed, "seed", defaults.Seed, "Seed for all random samples")
	fs.IntVar(&servers, "servers", defaults.StaffedStations, "Number of staffed counters")
	fs.IntVar(&selfCheckouts, "self-checkouts", defaults.SelfCheckouts, "Number of self-checkout units")
	fs.IntVar(&queueCapacity, "queue-capacity", defaults.QueueCapacity, "Wait-queue capacity per counter (and of the shared self-checkout queue)")
	fs.IntVar(&customers, "customers", defaults.Customers, "Number of customer arrivals")
	fs.Float64Var(&arrivalRate, "arrival-rate", defaults.ArrivalRate, "Customer arrival rate λ")
	fs.Float64Var(&serviceRate, "service-rate", defaults.ServiceRate, "Service rate μ")
	fs.Float64Var(&restRate, "rest-rate", defaults.RestRate, "Counter resting rate ρ")
	fs.Float64Var(&restProbability, "rest-prob", defaults.RestProbability, "Probability a counter rests after serving")
	fs.Float64Var(&greedyProb, "greedy-prob", defaults.GreedyProbability, "Probability a customer is greedy")

	fs.StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.StringVar(&configPath, "config", "", "Path to a facilities YAML file")
	fs.StringVar(&facility, "facility", "", "Facility name in --config (defaults to the file's default)")
	fs.StringVar(&traceLevel, "trace-level", string(trace.TraceLevelCustomers), "Event trace level (none, customers, all)")
	fs.StringVar(&resultsPath, "results-path", "", "Write JSON results to this path")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd.Flags())

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
