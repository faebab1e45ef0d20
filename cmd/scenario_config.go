package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const defaultScenariosFilePath = "scenarios.yaml"

// ScenariosConfig represents the full scenarios.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenariosConfig struct {
	Version   string              `yaml:"version"`
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is a named preset for the run command.
type Scenario struct {
	Capacity int      `yaml:"capacity"`
	Demands  []int    `yaml:"demands"`
	Load     LoadSpec `yaml:"load"`
	Output   string   `yaml:"output,omitempty"`
	Format   string   `yaml:"format,omitempty"`
	Plot     string   `yaml:"plot,omitempty"`
	LogScale bool     `yaml:"log_scale,omitempty"`
}

// LoadSpec is the offered-load sweep of a scenario.
type LoadSpec struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// loadScenariosConfig parses a scenarios file.
// Uses strict field checking: typos must cause errors.
func loadScenariosConfig(path string) (*ScenariosConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenarios file: %w", err)
	}
	var cfg ScenariosConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing scenarios file %s: %w", path, err)
	}
	return &cfg, nil
}

// lookupScenario returns the named scenario from path.
func lookupScenario(path, name string) (*Scenario, error) {
	cfg, err := loadScenariosConfig(path)
	if err != nil {
		return nil, err
	}
	sc, ok := cfg.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q; available: %v", name, cfg.names())
	}
	return &sc, nil
}

func (c *ScenariosConfig) names() []string {
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyScenario copies scenario values into opts for every flag the user did
// not set explicitly, so command-line values always win.
func applyScenario(flags *pflag.FlagSet, sc *Scenario, opts *sweepOptions) {
	set := func(name string, apply func()) {
		if !flags.Changed(name) {
			apply()
		}
	}
	set("capacity", func() { opts.Capacity = sc.Capacity })
	set("demands", func() { opts.Demands = append([]int(nil), sc.Demands...) })
	set("load-min", func() { opts.LoadMin = sc.Load.Min })
	set("load-max", func() { opts.LoadMax = sc.Load.Max })
	set("load-step", func() { opts.LoadStep = sc.Load.Step })
	set("log-scale", func() { opts.LogScale = sc.LogScale })
	if sc.Output != "" {
		set("output", func() { opts.Output = sc.Output })
	}
	if sc.Format != "" {
		set("format", func() { opts.Format = sc.Format })
	}
	if sc.Plot != "" {
		set("plot", func() { opts.Plot = sc.Plot })
	}
}
