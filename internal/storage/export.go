package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/actinfriction/internal/config"
	"github.com/san-kum/actinfriction/internal/dynamo"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Label      string             `json:"label"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Columns    []string           `json:"columns"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(cfg *config.Config, result *dynamo.Result) ExportData {
	states := make([][]float64, len(result.States))
	for i, s := range result.States {
		states[i] = s
	}
	return ExportData{
		Scenario:   cfg.Scenario,
		Label:      cfg.Label(),
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration(),
		Steps:      len(result.Times),
		Columns:    StateColumns(cfg.Scenario),
		Times:      result.Times,
		States:     states,
		Metrics:    result.Metrics,
	}
}

func ExportJSON(path string, cfg *config.Config, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, cfg, result)
}

func ExportJSONStdout(cfg *config.Config, result *dynamo.Result) error {
	return writeJSON(os.Stdout, cfg, result)
}

func writeJSON(w io.Writer, cfg *config.Config, result *dynamo.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(cfg, result))
}
