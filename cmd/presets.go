package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var presetsFilePath string

// presetsCmd lists the scenarios available to run --scenario
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List scenarios defined in the scenarios file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listScenarios(os.Stdout, presetsFilePath); err != nil {
			logrus.Fatalf("Failed to list scenarios: %v", err)
		}
	},
}

func listScenarios(w io.Writer, path string) error {
	cfg, err := loadScenariosConfig(path)
	if err != nil {
		return err
	}
	for _, name := range cfg.names() {
		sc := cfg.Scenarios[name]
		if _, err := fmt.Fprintf(w, "%s: capacity=%d demands=%v load=[%v, %v] step %v\n",
			name, sc.Capacity, sc.Demands, sc.Load.Min, sc.Load.Max, sc.Load.Step); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	presetsCmd.Flags().StringVar(&presetsFilePath, "scenarios-filepath", defaultScenariosFilePath, "Path to scenarios.yaml")

	rootCmd.AddCommand(presetsCmd)
}
