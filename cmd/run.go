package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/inference-sim/multirate-loss/loss"
	"github.com/inference-sim/multirate-loss/loss/chart"
	"github.com/inference-sim/multirate-loss/loss/report"
)

// sweepOptions holds everything the run command needs.
type sweepOptions struct {
	Capacity     int     // System capacity in resource units
	Demands      []int   // Resource units per call, one entry per traffic class
	LoadMin      float64 // First offered load per unit capacity
	LoadMax      float64 // Last offered load per unit capacity (inclusive)
	LoadStep     float64 // Load increment
	Workers      int     // Load points evaluated concurrently (0 = GOMAXPROCS)
	Output       string  // Result file path; empty writes to stdout
	Format       string  // text, csv or yaml
	Plot         string  // Chart image path; empty disables plotting
	LogScale     bool    // Logarithmic y axis on the chart
	PlotWidthCm  float64 // Chart width
	PlotHeightCm float64 // Chart height
}

var (
	runOpts           sweepOptions
	scenarioName      string // Preset from the scenarios file
	scenariosFilePath string // Path to scenarios.yaml
)

// runCmd sweeps offered load and reports per-class blocking
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep offered load and compute per-class blocking probabilities",
	Run: func(cmd *cobra.Command, args []string) {
		opts := runOpts
		if scenarioName != "" {
			sc, err := lookupScenario(scenariosFilePath, scenarioName)
			if err != nil {
				logrus.Fatalf("Failed to load scenario: %v", err)
			}
			logrus.Infof("Using scenario %q", scenarioName)
			applyScenario(cmd.Flags(), sc, &opts)
		}
		if err := runSweep(cmd.Context(), opts, os.Stdout); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
	},
}

// runSweep validates opts, sweeps the load range and writes the requested
// outputs. Nothing is written when validation fails.
func runSweep(ctx context.Context, opts sweepOptions, stdout io.Writer) error {
	if !report.IsValidFormat(opts.Format) {
		return fmt.Errorf("unknown format %q; valid: text, csv, yaml", opts.Format)
	}
	if opts.Plot != "" && (opts.PlotWidthCm <= 0 || opts.PlotHeightCm <= 0) {
		return fmt.Errorf("plot size must be positive, got %vx%v cm", opts.PlotWidthCm, opts.PlotHeightCm)
	}
	sys := loss.NewSystem(opts.Capacity, opts.Demands...)
	r := loss.LoadRange{Min: opts.LoadMin, Max: opts.LoadMax, Step: opts.LoadStep}

	logrus.Infof("Starting sweep: capacity=%d, demands=%v, load=[%v, %v] step %v",
		sys.Capacity, sys.Demands(), r.Min, r.Max, r.Step)
	startTime := time.Now()

	points, err := loss.Sweep(ctx, sys, r, loss.WithWorkers(opts.Workers))
	if err != nil {
		return err
	}
	logrus.Infof("Computed %d load points in %v", len(points), time.Since(startTime))

	format := report.Format(opts.Format)
	if opts.Output == "" {
		if err := report.Write(stdout, format, sys, points); err != nil {
			return err
		}
	} else {
		if err := report.SaveToFile(opts.Output, format, sys, points); err != nil {
			return err
		}
		logrus.Infof("Results saved to %s", opts.Output)
	}

	if opts.Plot != "" {
		width := vg.Length(opts.PlotWidthCm) * vg.Centimeter
		height := vg.Length(opts.PlotHeightCm) * vg.Centimeter
		if err := chart.Save(opts.Plot, sys, points, opts.LogScale, width, height); err != nil {
			return err
		}
		logrus.Infof("Plot saved to %s", opts.Plot)
	}
	return nil
}

func init() {
	runCmd.Flags().IntVar(&runOpts.Capacity, "capacity", 20, "System capacity in resource units")
	runCmd.Flags().IntSliceVar(&runOpts.Demands, "demands", []int{1, 3}, "Comma-separated resource units per call for each traffic class")
	runCmd.Flags().Float64Var(&runOpts.LoadMin, "load-min", 0.2, "First offered load per unit capacity")
	runCmd.Flags().Float64Var(&runOpts.LoadMax, "load-max", 1.3, "Last offered load per unit capacity (inclusive)")
	runCmd.Flags().Float64Var(&runOpts.LoadStep, "load-step", 0.1, "Offered load increment")
	runCmd.Flags().IntVar(&runOpts.Workers, "workers", 0, "Load points computed concurrently (0 = number of CPUs)")
	runCmd.Flags().StringVar(&runOpts.Output, "output", "", "Result file path (default: stdout)")
	runCmd.Flags().StringVar(&runOpts.Format, "format", string(report.FormatText), "Result format (text, csv, yaml)")
	runCmd.Flags().StringVar(&runOpts.Plot, "plot", "", "Chart image path (.png, .svg, .pdf); empty disables plotting")
	runCmd.Flags().BoolVar(&runOpts.LogScale, "log-scale", false, "Logarithmic blocking-probability axis")
	runCmd.Flags().Float64Var(&runOpts.PlotWidthCm, "plot-width", 16, "Chart width in cm")
	runCmd.Flags().Float64Var(&runOpts.PlotHeightCm, "plot-height", 10, "Chart height in cm")

	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Named scenario from the scenarios file; explicit flags override it")
	runCmd.Flags().StringVar(&scenariosFilePath, "scenarios-filepath", defaultScenariosFilePath, "Path to scenarios.yaml")

	rootCmd.AddCommand(runCmd)
}
