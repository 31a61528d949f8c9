package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/schedsim/sim"
)

// Workload is a process set plus the scheduling parameters it ships with.
type Workload struct {
	Name        string            `yaml:"-"`
	Description string            `yaml:"description,omitempty"`
	Processes   []sim.ProcessSpec `yaml:"processes"`
	Scheduling  *sim.Config       `yaml:"scheduling,omitempty"` // nil when the file has no scheduling block
}

// LoadWorkload reads a workload file. The format follows the extension:
// .yaml/.yml for YAML, .csv for CSV.
func LoadWorkload(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workload: %w", err)
	}

	var w *Workload
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		w, err = parseWorkloadYAML(data)
	case ".csv":
		w, err = parseWorkloadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported workload format %q (want .yaml, .yml or .csv)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse workload %s: %w", path, err)
	}
	w.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	logrus.Infof("Loaded %d processes from %s", len(w.Processes), path)
	return w, nil
}

// parseWorkloadYAML decodes a workload with strict field checking: typos must cause errors.
func parseWorkloadYAML(data []byte) (*Workload, error) {
	var w Workload
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return &w, nil
		}
		return nil, err
	}
	return &w, nil
}

// parseWorkloadCSV reads rows of id,arrival,burst[,priority]. A first row whose
// arrival column is not a number is treated as a header.
func parseWorkloadCSV(r io.Reader) (*Workload, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	w := &Workload{Processes: make([]sim.ProcessSpec, 0, len(rows))}
	for i, row := range rows {
		if i == 0 && len(row) > 1 {
			if _, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64); err != nil {
				continue
			}
		}
		spec, err := parseCSVRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		w.Processes = append(w.Processes, spec)
	}
	return w, nil
}

func parseCSVRow(row []string) (sim.ProcessSpec, error) {
	if len(row) < 3 || len(row) > 4 {
		return sim.ProcessSpec{}, fmt.Errorf("want 3 or 4 fields (id,arrival,burst[,priority]), got %d", len(row))
	}
	spec := sim.ProcessSpec{ID: strings.TrimSpace(row[0])}
	var err error
	if spec.Arrival, err = strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64); err != nil {
		return spec, fmt.Errorf("arrival: %w", err)
	}
	if spec.Burst, err = strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64); err != nil {
		return spec, fmt.Errorf("burst: %w", err)
	}
	if len(row) == 4 {
		if spec.Priority, err = strconv.Atoi(strings.TrimSpace(row[3])); err != nil {
			return spec, fmt.Errorf("priority: %w", err)
		}
	}
	return spec, nil
}
