package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/multirate-loss/loss"
)

var (
	occCapacity int     // System capacity in resource units
	occDemands  []int   // Resource units per call, one per class
	occLoad     float64 // Offered load per unit capacity
)

// occupancyCmd prints the full occupancy distribution at one load
var occupancyCmd = &cobra.Command{
	Use:   "occupancy",
	Short: "Print the occupancy distribution and blocking at a single offered load",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printOccupancy(os.Stdout, loss.NewSystem(occCapacity, occDemands...), occLoad); err != nil {
			logrus.Fatalf("Occupancy failed: %v", err)
		}
	},
}

func printOccupancy(w io.Writer, sys loss.System, a float64) error {
	res, err := loss.Compute(sys, a)
	if err != nil {
		return err
	}
	logrus.Debugf("occupancy result: %v", res)

	var b strings.Builder
	fmt.Fprintf(&b, "=== Occupancy (capacity %d, load %.2f) ===\n", sys.Capacity, a)
	fmt.Fprintln(&b, "n, p[n]")
	for n, p := range res.Occupancy {
		fmt.Fprintf(&b, "%d, %s\n", n, strconv.FormatFloat(p, 'e', 6, 64))
	}
	fmt.Fprintf(&b, "Mean occupancy       : %.4f units\n", res.Mean())
	fmt.Fprintf(&b, "Utilization          : %.4f\n", res.Utilization())
	for i, cl := range sys.Classes {
		fmt.Fprintf(&b, "Blocking stream %d (t=%d): %.6f\n", i+1, cl.Demand, res.Blocking[i])
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func init() {
	occupancyCmd.Flags().IntVar(&occCapacity, "capacity", 20, "System capacity in resource units")
	occupancyCmd.Flags().IntSliceVar(&occDemands, "demands", []int{1, 3}, "Comma-separated resource units per call for each traffic class")
	occupancyCmd.Flags().Float64Var(&occLoad, "load", 0.2, "Offered load per unit capacity")

	rootCmd.AddCommand(occupancyCmd)
}
