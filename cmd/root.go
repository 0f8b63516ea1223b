package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/traysim/traysim/sim"
)

var (
	// CLI flags for the simulated line
	seed          int64   // Seed for all random sampling
	logLevel      string  // Log verbosity level
	totalItems    int     // Number of trays released at time zero
	prepStaff     int     // Staff count at the prep stage
	pickupAgents  int     // Number of batch pickup agents
	finishStaff   int     // Staff count at the finish stage
	prepMin       float64 // Prep service time lower bound (minutes)
	prepMax       float64 // Prep service time upper bound (minutes)
	pickupMin     float64 // Batch carry time lower bound (minutes)
	pickupMax     float64 // Batch carry time upper bound (minutes)
	finishMin     float64 // Finish service time lower bound (minutes)
	finishMax     float64 // Finish service time upper bound (minutes)
	batchMin      int     // Smallest batch target an agent samples
	batchMax      int     // Largest batch target an agent samples
	hardCap       int     // Absolute upper bound on any batch
	minAcceptable int     // Smallest batch accepted while trays are still arriving
	pollTick      float64 // Idle agent poll interval (minutes)
	horizon       float64 // Virtual-time cutoff in minutes (0 = none)
	startLabel    string  // Wall-clock anchor for minute 0 (RFC3339)

	scenarioPath string // YAML file of named scenarios; overrides line flags
	csvPath      string // Write per-tray completion records as CSV
	jsonPath     string // Write the full report as JSON
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "traysim",
	Short: "Discrete-event simulator for batched tray production lines",
}

// configFromFlags assembles a SimulationConfig from the line flags.
func configFromFlags() (sim.SimulationConfig, error) {
	cfg := sim.SimulationConfig{
		PrepStaff:     prepStaff,
		PickupAgents:  pickupAgents,
		FinishStaff:   finishStaff,
		PrepTime:      sim.TimeRange{Min: prepMin, Max: prepMax},
		PickupTime:    sim.TimeRange{Min: pickupMin, Max: pickupMax},
		FinishTime:    sim.TimeRange{Min: finishMin, Max: finishMax},
		BatchMin:      batchMin,
		BatchMax:      batchMax,
		HardCap:       hardCap,
		MinAcceptable: minAcceptable,
		TotalItems:    totalItems,
		PollTick:      pollTick,
		Horizon:       horizon,
		Seed:          seed,
	}
	start, err := time.Parse(time.RFC3339, startLabel)
	if err != nil {
		return cfg, err
	}
	cfg.Start = start
	return cfg, nil
}

// runCmd executes the simulation using parameters from CLI flags or a
// scenario file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tray line simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenarios := []Scenario{}
		if scenarioPath != "" {
			scenarios, err = LoadScenarios(scenarioPath)
			if err != nil {
				logrus.Fatalf("unable to read scenario file: %v", err)
			}
		} else {
			cfg, err := configFromFlags()
			if err != nil {
				logrus.Fatalf("invalid --start-time: %v", err)
			}
			scenarios = append(scenarios, Scenario{Name: "default", Config: cfg})
		}

		for _, sc := range scenarios {
			// Each scenario gets an independent simulator, pools, and RNG
			// streams; nothing is shared across runs.
			s, err := sim.NewSimulator(sc.Config)
			if err != nil {
				logrus.Fatalf("scenario %q: %v", sc.Name, err)
			}
			logrus.Infof("Running scenario %q", sc.Name)
			report := s.Run()
			report.Print()

			if csvPath != "" {
				if err := WriteRecordsCSV(exportPath(csvPath, sc.Name, len(scenarios) > 1), report); err != nil {
					logrus.Fatalf("scenario %q: writing records CSV: %v", sc.Name, err)
				}
			}
			if jsonPath != "" {
				if err := WriteReportJSON(exportPath(jsonPath, sc.Name, len(scenarios) > 1), report); err != nil {
					logrus.Fatalf("scenario %q: writing report JSON: %v", sc.Name, err)
				}
			}
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random sampling")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&totalItems, "total-items", defaults.TotalItems, "Number of trays released at time zero")
	runCmd.Flags().IntVar(&prepStaff, "prep-staff", defaults.PrepStaff, "Staff count at the prep stage")
	runCmd.Flags().IntVar(&pickupAgents, "pickup-agents", defaults.PickupAgents, "Number of batch pickup agents")
	runCmd.Flags().IntVar(&finishStaff, "finish-staff", defaults.FinishStaff, "Staff count at the finish stage")

	runCmd.Flags().Float64Var(&prepMin, "prep-min", defaults.PrepTime.Min, "Prep service time lower bound (minutes)")
	runCmd.Flags().Float64Var(&prepMax, "prep-max", defaults.PrepTime.Max, "Prep service time upper bound (minutes)")
	runCmd.Flags().Float64Var(&pickupMin, "pickup-min", defaults.PickupTime.Min, "Batch carry time lower bound (minutes)")
	runCmd.Flags().Float64Var(&pickupMax, "pickup-max", defaults.PickupTime.Max, "Batch carry time upper bound (minutes)")
	runCmd.Flags().Float64Var(&finishMin, "finish-min", defaults.FinishTime.Min, "Finish service time lower bound (minutes)")
	runCmd.Flags().Float64Var(&finishMax, "finish-max", defaults.FinishTime.Max, "Finish service time upper bound (minutes)")

	runCmd.Flags().IntVar(&batchMin, "batch-min", defaults.BatchMin, "Smallest batch target an agent samples")
	runCmd.Flags().IntVar(&batchMax, "batch-max", defaults.BatchMax, "Largest batch target an agent samples")
	runCmd.Flags().IntVar(&hardCap, "hard-cap", defaults.HardCap, "Absolute upper bound on any batch size")
	runCmd.Flags().IntVar(&minAcceptable, "min-acceptable", defaults.MinAcceptable, "Smallest batch accepted while trays are still arriving")
	runCmd.Flags().Float64Var(&pollTick, "poll-tick", defaults.PollTick, "Idle agent poll interval (minutes)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Virtual-time cutoff in minutes (0 = none)")
	runCmd.Flags().StringVar(&startLabel, "start-time", defaults.Start.Format(time.RFC3339), "Wall-clock anchor for minute 0 (RFC3339)")

	runCmd.Flags().StringVar(&scenarioPath, "scenarios", "", "YAML scenario file; overrides the line flags")
	runCmd.Flags().StringVar(&csvPath, "output-csv", "", "Write per-tray completion records to this CSV file")
	runCmd.Flags().StringVar(&jsonPath, "output-json", "", "Write the full report to this JSON file")

	rootCmd.AddCommand(runCmd)
}
