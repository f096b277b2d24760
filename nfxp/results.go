package nfxp

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WriteYAML persists the estimates as a YAML record.
func (e Estimates) WriteYAML(path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling estimates: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing estimates: %w", err)
	}
	return nil
}

// WriteCSV persists the estimates as a parameter,value table suitable for
// tabular export.
func (e Estimates) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating estimates file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := [][]string{
		{"parameter", "value"},
		{"theta_cost", formatFloat(e.ThetaCost)},
		{"rc", formatFloat(e.RC)},
		{"theta0", formatFloat(e.Theta0)},
		{"theta1", formatFloat(e.Theta1)},
		{"theta2", formatFloat(e.Theta2)},
		{"log_likelihood", formatFloat(e.LogLikelihood)},
		{"converged", strconv.FormatBool(e.Converged)},
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing estimates row %q: %w", row[0], err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
