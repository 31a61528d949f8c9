package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/schedsim/sim"
	"github.com/inference-sim/schedsim/sim/record"
	"github.com/inference-sim/schedsim/sim/trace"
)

// DefaultQuantum is used for round-robin when neither the workload nor --quantum sets one.
const DefaultQuantum int64 = 3

// logLevelEnv names the environment variable that supplies the default log level.
const logLevelEnv = "SCHEDSIM_LOG"

var (
	// workload selection
	workloadPath string // Path to a YAML or CSV workload file
	presetName   string // Name of an embedded preset workload

	// scheduling parameters, override the workload's scheduling block when set
	policyName    string // Scheduling policy
	quantum       int64  // Round-robin time slice
	contextSwitch int64  // Ticks charged per context switch
	agingEnabled  bool   // Enable priority aging (priority-p only)
	agingInterval int64  // Ticks of waiting per aging promotion
	agingStep     int    // Priority levels gained per promotion

	// output
	outputFormat string // table or yaml
	traceLevel   string // Decision trace level
	recordDB     string // SQLite database to record runs into
	logLevel     string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "schedsim",
	Short:         "Discrete-event CPU scheduling simulator",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

// runCmd simulates one policy over one workload
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one scheduling policy over a workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := selectWorkload()
		if err != nil {
			return err
		}
		cfg := resolveConfig(cmd, w)
		if !validFormats[outputFormat] {
			return fmt.Errorf("unknown format %q; valid: table, yaml", outputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("unknown trace level %q; valid: none, decisions", traceLevel)
		}
		return runOne(cmd.OutOrStdout(), w, cfg)
	},
}

// compareCmd simulates every policy over one workload
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Simulate every scheduling policy over a workload and compare the metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := selectWorkload()
		if err != nil {
			return err
		}
		base := resolveConfig(cmd, w)
		results, err := compareAll(base, w.Processes)
		if err != nil {
			return err
		}
		if recordDB != "" {
			if err := recordAll(recordDB, w.Name, results); err != nil {
				return err
			}
		}
		writeComparison(cmd.OutOrStdout(), w.Name, results)
		return nil
	},
}

// presetsCmd lists the embedded workloads
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the embedded preset workloads",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := PresetNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			w, err := LoadPreset(name)
			if err != nil {
				return err
			}
			policy := "-"
			if w.Scheduling != nil {
				policy = string(w.Scheduling.Policy)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-12s %d processes  %s\n", name, policy, len(w.Processes), w.Description)
		}
		return nil
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		// flushes any open run recorder before exiting
		atexit.Exit(1)
	}
}

// setupLogging loads .env and applies --log, falling back to SCHEDSIM_LOG.
func setupLogging(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	level := logLevel
	if env := os.Getenv(logLevelEnv); env != "" && !cmd.Flags().Changed("log") {
		level = env
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(parsed)
	return nil
}

// selectWorkload loads the workload named by exactly one of --workload and --preset.
func selectWorkload() (*Workload, error) {
	switch {
	case workloadPath != "" && presetName != "":
		return nil, errors.New("--workload and --preset are mutually exclusive")
	case workloadPath != "":
		return LoadWorkload(workloadPath)
	case presetName != "":
		return LoadPreset(presetName)
	default:
		return nil, errors.New("a workload is required: pass --workload FILE or --preset NAME (see `schedsim presets`)")
	}
}

// resolveConfig starts from the workload's scheduling block and applies the flags
// the user set explicitly. Round-robin gets DefaultQuantum when no quantum is given,
// and enabled aging gets the default interval and step when they are unset.
func resolveConfig(cmd *cobra.Command, w *Workload) sim.Config {
	cfg := sim.Config{Policy: sim.PolicyFCFS}
	if w.Scheduling != nil {
		cfg = *w.Scheduling
		if cfg.Policy == "" {
			cfg.Policy = sim.PolicyFCFS
		}
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policy = sim.PolicyKind(policyName)
	}
	if flags.Changed("quantum") {
		cfg.Quantum = quantum
	}
	if flags.Changed("context-switch") {
		cfg.ContextSwitch = contextSwitch
	}
	if flags.Changed("aging") {
		cfg.Aging.Enabled = agingEnabled
	}
	if flags.Changed("aging-interval") {
		cfg.Aging.Interval = agingInterval
	}
	if flags.Changed("aging-step") {
		cfg.Aging.Step = agingStep
	}

	if cfg.Policy == sim.PolicyRoundRobin && cfg.Quantum == 0 {
		cfg.Quantum = DefaultQuantum
	}
	if cfg.Aging.Enabled {
		if cfg.Aging.Interval == 0 {
			cfg.Aging.Interval = sim.DefaultAgingInterval
		}
		if cfg.Aging.Step == 0 {
			cfg.Aging.Step = sim.DefaultAgingStep
		}
	}
	return cfg
}

// runOne simulates cfg over w and writes the report.
func runOne(out io.Writer, w *Workload, cfg sim.Config) error {
	logrus.Infof("Simulating %s over %s (quantum=%d, context switch=%d, aging=%v)",
		cfg.Policy, w.Name, cfg.Quantum, cfg.ContextSwitch, cfg.Aging.Enabled)

	res, err := sim.Simulate(cfg, w.Processes, sim.WithTrace(trace.TraceLevel(traceLevel)))
	if err != nil {
		return err
	}

	report := Report{Workload: w.Name, Result: res}
	if res.Trace != nil {
		report.TraceSummary = trace.Summarize(res.Trace)
	}
	if recordDB != "" {
		rec, err := record.Open(recordDB)
		if err != nil {
			return err
		}
		report.RunID, err = rec.Record(w.Name, res)
		if err != nil {
			return err
		}
		if err := rec.Close(); err != nil {
			return err
		}
	}
	return writeReport(out, outputFormat, report)
}

// compareAll simulates every policy over specs concurrently. Parameters a policy
// does not use are cleared so each run only carries what applies to it.
// Results are returned in ValidPolicyNames order.
func compareAll(base sim.Config, specs []sim.ProcessSpec) ([]*sim.Result, error) {
	names := sim.ValidPolicyNames()
	results := make([]*sim.Result, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		cfg := base
		cfg.Policy = sim.PolicyKind(name)
		if cfg.Policy != sim.PolicyRoundRobin {
			cfg.Quantum = 0
		} else if cfg.Quantum == 0 {
			cfg.Quantum = DefaultQuantum
		}
		if cfg.Policy != sim.PolicyPriorityPreemptive {
			cfg.Aging = sim.AgingConfig{}
		}

		wg.Add(1)
		go func(i int, cfg sim.Config) {
			defer wg.Done()
			results[i], errs[i] = sim.Simulate(cfg, specs)
		}(i, cfg)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
	}
	return results, nil
}

// recordAll writes every result into the database at path.
func recordAll(path, workload string, results []*sim.Result) error {
	rec, err := record.Open(path)
	if err != nil {
		return err
	}
	for _, res := range results {
		id, err := rec.Record(workload, res)
		if err != nil {
			return err
		}
		logrus.Infof("Recorded %s as run %s", res.Policy, id)
	}
	return rec.Close()
}

// addWorkloadFlags registers the workload and scheduling flags shared by run and compare.
func addWorkloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workloadPath, "workload", "", "Workload file (.yaml, .yml or .csv)")
	cmd.Flags().StringVar(&presetName, "preset", "", "Embedded preset workload (see `schedsim presets`)")
	cmd.Flags().Int64Var(&quantum, "quantum", DefaultQuantum, "Round-robin time quantum in ticks")
	cmd.Flags().Int64Var(&contextSwitch, "context-switch", 0, "Context switch overhead in ticks (0 disables)")
	cmd.Flags().BoolVar(&agingEnabled, "aging", false, "Enable priority aging (priority-p only)")
	cmd.Flags().Int64Var(&agingInterval, "aging-interval", sim.DefaultAgingInterval, "Ticks of waiting per aging promotion")
	cmd.Flags().IntVar(&agingStep, "aging-step", sim.DefaultAgingStep, "Priority levels gained per aging promotion")
	cmd.Flags().StringVar(&recordDB, "record-db", "", "Record runs into this SQLite database")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic); defaults to $"+logLevelEnv)

	addWorkloadFlags(runCmd)
	runCmd.Flags().StringVar(&policyName, "policy", string(sim.PolicyFCFS), fmt.Sprintf("Scheduling policy %v", sim.ValidPolicyNames()))
	runCmd.Flags().StringVar(&outputFormat, "format", FormatTable, "Output format (table, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")

	addWorkloadFlags(compareCmd)

	rootCmd.AddCommand(runCmd, compareCmd, presetsCmd)
}
