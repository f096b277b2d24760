package nfxp

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Observation is one prepared (state, decision, increment) row of the panel.
// State is the discretized usage level at decision time, Decision is 0 (keep)
// or 1 (replace), Increment is the observed state increment to the next
// period and feeds only the transition estimation.
type Observation struct {
	State     int
	Decision  int
	Increment int
}

// Panel is the flat observation table the estimator consumes, concatenated
// across independent units. Row order is irrelevant to the likelihood, which
// sums over all rows.
type Panel []Observation

// CSV column headers for panel files.
var panelColumns = []string{"state", "decision", "increment"}

// Validate checks every row against the state space. Increments are checked
// against the {0,1,2} support here rather than deep in the transition
// estimator so malformed data fails before any numeric work starts.
func (p Panel) Validate(states int) error {
	if len(p) == 0 {
		return invalidInputf("observation panel is empty")
	}
	for i, obs := range p {
		if obs.State < 0 || obs.State >= states {
			return invalidInputf("state %d at row %d outside [0,%d)", obs.State, i, states)
		}
		if obs.Decision != DecisionKeep && obs.Decision != DecisionReplace {
			return invalidInputf("decision %d at row %d is not 0 or 1", obs.Decision, i)
		}
		if obs.Increment < 0 || obs.Increment > 2 {
			return invalidInputf("increment %d at row %d outside supported set {0,1,2}", obs.Increment, i)
		}
	}
	return nil
}

// Increments extracts the increment column for transition estimation.
func (p Panel) Increments() []int {
	out := make([]int, len(p))
	for i, obs := range p {
		out[i] = obs.Increment
	}
	return out
}

// LoadPanelCSV reads a prepared panel from a CSV file with a
// state,decision,increment header row and validates every row against the
// state space, so malformed data fails at the boundary instead of deep in an
// estimation run.
func LoadPanelCSV(path string, states int) (Panel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening panel file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading panel header: %w", err)
	}
	if len(header) != len(panelColumns) {
		return nil, fmt.Errorf("panel header has %d columns, want %d (%v)", len(header), len(panelColumns), panelColumns)
	}

	var panel Panel
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading panel row %d: %w", row, err)
		}
		obs, err := parseObservation(record)
		if err != nil {
			return nil, fmt.Errorf("parsing panel row %d: %w", row, err)
		}
		panel = append(panel, obs)
	}
	if err := panel.Validate(states); err != nil {
		return nil, err
	}
	return panel, nil
}

func parseObservation(record []string) (Observation, error) {
	if len(record) != 3 {
		return Observation{}, fmt.Errorf("want 3 fields, got %d", len(record))
	}
	state, err := strconv.Atoi(record[0])
	if err != nil {
		return Observation{}, fmt.Errorf("state: %w", err)
	}
	decision, err := strconv.Atoi(record[1])
	if err != nil {
		return Observation{}, fmt.Errorf("decision: %w", err)
	}
	increment, err := strconv.Atoi(record[2])
	if err != nil {
		return Observation{}, fmt.Errorf("increment: %w", err)
	}
	return Observation{State: state, Decision: decision, Increment: increment}, nil
}

// ExportCSV writes the panel in the format LoadPanelCSV reads.
func (p Panel) ExportCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating panel file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(panelColumns); err != nil {
		return fmt.Errorf("writing panel header: %w", err)
	}
	for i, obs := range p {
		row := []string{
			strconv.Itoa(obs.State),
			strconv.Itoa(obs.Decision),
			strconv.Itoa(obs.Increment),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing panel row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
