package cmd

import (
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nfxp-go/nfxp/nfxp"
)

var (
	// Shared CLI flags
	logLevel string // Log verbosity level

	// CLI flags for the estimation run
	dataPath   string  // Prepared panel CSV path
	configPath string  // Optional YAML file with estimation settings
	states     int     // State-space size S
	beta       float64 // Discount factor (fixed, not estimated)
	tol        float64 // EV contraction tolerance
	maxEVIter  int     // Defensive cap on contraction iterations
	maxOptIter int     // Outer minimizer iteration cap
	startTheta []float64
	lowerTheta []float64
	upperTheta []float64
	outPath    string // Output path for estimates (.yaml or .csv by extension)

	// CLI flags for synthetic panel generation
	simThetaCost float64 // Generating maintenance cost coefficient
	simRC        float64 // Generating replacement cost
	simTheta0    float64 // Generating P(increment=0)
	simTheta1    float64 // Generating P(increment=1)
	simUnits     int     // Independent units to simulate
	simPeriods   int     // Decision periods per unit
	simSeed      int64   // RNG seed
	simOutPath   string  // Output panel CSV path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "nfxp",
	Short: "Nested-fixed-point estimator for dynamic replacement models",
}

// estimateCmd runs the full two-step estimation from a prepared panel CSV
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate structural parameters from an observation panel",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		if dataPath == "" {
			logrus.Fatalf("No panel file provided. Use --data.")
		}

		cfg := nfxp.EstimationConfig{
			States: states,
			Solve:  nfxp.SolveConfig{Beta: beta, Tol: tol, MaxIter: maxEVIter},
			Start:  startTheta,
			Lower:  lowerTheta,
			Upper:  upperTheta,
			MaxOpt: maxOptIter,
		}
		if configPath != "" {
			fileCfg, err := LoadEstimationFile(configPath)
			if err != nil {
				logrus.Fatalf("unable to read estimation config: %v", err)
			}
			cfg = fileCfg.Apply(cfg, cmd.Flags())
		}

		panel, err := nfxp.LoadPanelCSV(dataPath, cfg.States)
		if err != nil {
			logrus.Fatalf("unable to read panel: %v", err)
		}
		logrus.Infof("Starting estimation over %d observations: S=%d, beta=%g, tol=%g",
			len(panel), cfg.States, cfg.Solve.Beta, cfg.Solve.Tol)

		startTime := time.Now()
		est, err := nfxp.Estimate(panel, cfg, &nfxp.NelderMead{})
		if err != nil {
			logrus.Fatalf("estimation failed: %v", err)
		}
		logrus.Infof("Estimation finished in %s: theta_cost=%.4f RC=%.4f theta0=%.4f theta1=%.4f theta2=%.4f (log-likelihood %.2f)",
			time.Since(startTime).Round(time.Millisecond),
			est.ThetaCost, est.RC, est.Theta0, est.Theta1, est.Theta2, est.LogLikelihood)

		if err := writeEstimates(est, outPath); err != nil {
			logrus.Fatalf("unable to write estimates: %v", err)
		}
		logrus.Infof("Estimates written to %s", outPath)
	},
}

// simulateCmd generates a synthetic panel from known parameters
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate a synthetic observation panel from known parameters",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		theta := nfxp.Theta{Cost: simThetaCost, RC: simRC}
		tp := nfxp.TransitionParams{
			Theta0: simTheta0,
			Theta1: simTheta1,
			Theta2: 1 - simTheta0 - simTheta1,
		}
		cfg := nfxp.SimConfig{
			States:  states,
			Units:   simUnits,
			Periods: simPeriods,
			Solve:   nfxp.SolveConfig{Beta: beta, Tol: tol, MaxIter: maxEVIter},
		}

		logrus.Infof("Simulating %d units x %d periods at theta_cost=%g, RC=%g", simUnits, simPeriods, simThetaCost, simRC)
		panel, err := nfxp.SimulatePanel(theta, tp, cfg, rand.New(rand.NewSource(simSeed)))
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		if err := panel.ExportCSV(simOutPath); err != nil {
			logrus.Fatalf("unable to write panel: %v", err)
		}
		logrus.Infof("Panel with %d observations written to %s", len(panel), simOutPath)
	},
}

func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// writeEstimates dispatches on the output extension: CSV table or YAML record.
func writeEstimates(est nfxp.Estimates, path string) error {
	if strings.HasSuffix(path, ".csv") {
		return est.WriteCSV(path)
	}
	return est.WriteYAML(path)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVar(&states, "states", nfxp.DefaultStates, "State-space size S")
	rootCmd.PersistentFlags().Float64Var(&beta, "beta", nfxp.DefaultBeta, "Discount factor (fixed, not estimated)")
	rootCmd.PersistentFlags().Float64Var(&tol, "tol", nfxp.DefaultTol, "Convergence tolerance for the EV contraction")
	rootCmd.PersistentFlags().IntVar(&maxEVIter, "max-ev-iterations", nfxp.DefaultMaxIter, "Defensive cap on contraction iterations")

	estimateCmd.Flags().StringVar(&dataPath, "data", "", "Prepared panel CSV (state,decision,increment)")
	estimateCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML estimation config (flags win over file values)")
	estimateCmd.Flags().IntVar(&maxOptIter, "max-opt-iterations", nfxp.DefaultMaxOptIterations, "Outer minimizer iteration cap")
	estimateCmd.Flags().Float64SliceVar(&startTheta, "start", []float64{1, 5}, "Initial search point theta_cost,RC")
	estimateCmd.Flags().Float64SliceVar(&lowerTheta, "lower", []float64{0, 0}, "Per-parameter lower bounds")
	estimateCmd.Flags().Float64SliceVar(&upperTheta, "upper", []float64{100, 100}, "Per-parameter upper bounds")
	estimateCmd.Flags().StringVar(&outPath, "out", "estimates.yaml", "Output path for estimates (.yaml or .csv)")

	simulateCmd.Flags().Float64Var(&simThetaCost, "theta-cost", 2.46, "Generating maintenance cost coefficient")
	simulateCmd.Flags().Float64Var(&simRC, "rc", 9.58, "Generating replacement cost")
	simulateCmd.Flags().Float64Var(&simTheta0, "p0", 0.36, "Generating P(increment=0)")
	simulateCmd.Flags().Float64Var(&simTheta1, "p1", 0.62, "Generating P(increment=1)")
	simulateCmd.Flags().IntVar(&simUnits, "units", 10, "Independent units to simulate")
	simulateCmd.Flags().IntVar(&simPeriods, "periods", 1000, "Decision periods per unit")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 42, "Seed for panel generation")
	simulateCmd.Flags().StringVar(&simOutPath, "out", "panel.csv", "Output panel CSV path")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(simulateCmd)
}
