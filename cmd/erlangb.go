package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/multirate-loss/loss"
)

var (
	erlangServers int     // Number of single-unit circuits
	erlangTraffic float64 // Offered traffic in Erlangs
)

// erlangBCmd evaluates the single-rate Erlang-B formula
var erlangBCmd = &cobra.Command{
	Use:   "erlangb",
	Short: "Erlang-B blocking for single-unit calls",
	Run: func(cmd *cobra.Command, args []string) {
		if err := printErlangB(os.Stdout, erlangServers, erlangTraffic); err != nil {
			logrus.Fatalf("Erlang-B failed: %v", err)
		}
	},
}

func printErlangB(w io.Writer, servers int, traffic float64) error {
	b, err := loss.ErlangB(servers, traffic)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "B(%d, %.4f) = %.6f\n", servers, traffic, b)
	return err
}

func init() {
	erlangBCmd.Flags().IntVar(&erlangServers, "servers", 10, "Number of circuits")
	erlangBCmd.Flags().Float64Var(&erlangTraffic, "traffic", 5, "Offered traffic in Erlangs")

	rootCmd.AddCommand(erlangBCmd)
}
