package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nfxp-go/nfxp/nfxp"
)

// EstimationFile mirrors the estimation knobs as a YAML document, so a full
// calibration can be versioned alongside the data instead of retyped as
// flags. Explicit flags always win over file values.
type EstimationFile struct {
	States int       `yaml:"states"`
	Beta   float64   `yaml:"beta"`
	Tol    float64   `yaml:"tol"`
	MaxEV  int       `yaml:"max_ev_iterations"`
	MaxOpt int       `yaml:"max_opt_iterations"`
	Start  []float64 `yaml:"start"`
	Lower  []float64 `yaml:"lower"`
	Upper  []float64 `yaml:"upper"`
}

// LoadEstimationFile reads and parses a YAML estimation config.
func LoadEstimationFile(path string) (*EstimationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading estimation config: %w", err)
	}
	var f EstimationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing estimation config: %w", err)
	}
	return &f, nil
}

// Apply overlays the file values onto cfg for every knob whose flag was not
// set explicitly on the command line.
func (f *EstimationFile) Apply(cfg nfxp.EstimationConfig, flags *pflag.FlagSet) nfxp.EstimationConfig {
	if f.States != 0 && !flags.Changed("states") {
		cfg.States = f.States
	}
	if f.Beta != 0 && !flags.Changed("beta") {
		cfg.Solve.Beta = f.Beta
	}
	if f.Tol != 0 && !flags.Changed("tol") {
		cfg.Solve.Tol = f.Tol
	}
	if f.MaxEV != 0 && !flags.Changed("max-ev-iterations") {
		cfg.Solve.MaxIter = f.MaxEV
	}
	if f.MaxOpt != 0 && !flags.Changed("max-opt-iterations") {
		cfg.MaxOpt = f.MaxOpt
	}
	if len(f.Start) != 0 && !flags.Changed("start") {
		cfg.Start = f.Start
	}
	if len(f.Lower) != 0 && !flags.Changed("lower") {
		cfg.Lower = f.Lower
	}
	if len(f.Upper) != 0 && !flags.Changed("upper") {
		cfg.Upper = f.Upper
	}
	return cfg
}
