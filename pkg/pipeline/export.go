package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang/snappy"
)

// ExportDocument is the on-disk representation of a pipeline run
type ExportDocument struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Profile     string           `json:"profile"`
	Partition   PartitionSummary `json:"partition"`
	Sectors     []SectorReport   `json:"sectors"`
	Failures    []FailureReport  `json:"failures,omitempty"`
}

// PartitionSummary mirrors the partition stats for reporting
type PartitionSummary struct {
	TotalNodes     int `json:"total_nodes"`
	AssignedNodes  int `json:"assigned_nodes"`
	DroppedNodes   int `json:"dropped_nodes"`
	KeptSectors    int `json:"kept_sectors"`
	DroppedSectors int `json:"dropped_sectors"`
}

// SectorReport is one sector's optimization outcome
type SectorReport struct {
	SectorID      int                `json:"sector_id"`
	Probabilities map[string]float64 `json:"probabilities"`
	Selected      []string           `json:"selected"`
}

// FailureReport records a sector that failed optimization, kept distinct
// from sectors dropped for capacity.
type FailureReport struct {
	SectorID int    `json:"sector_id"`
	Error    string `json:"error"`
}

// BuildExport converts a run report into its export form
func BuildExport(report *Report, profile string) ExportDocument {
	doc := ExportDocument{
		GeneratedAt: time.Now().UTC(),
		Profile:     profile,
		Partition: PartitionSummary{
			TotalNodes:     report.Partition.TotalNodes,
			AssignedNodes:  report.Partition.AssignedNodes,
			DroppedNodes:   report.Partition.DroppedNodes,
			KeptSectors:    report.Partition.KeptSectors,
			DroppedSectors: report.Partition.DroppedSectors,
		},
		Sectors:  make([]SectorReport, 0, len(report.Results)),
		Failures: make([]FailureReport, 0, len(report.Failures)),
	}

	for _, r := range report.Results {
		doc.Sectors = append(doc.Sectors, SectorReport{
			SectorID:      r.SectorID,
			Probabilities: r.Probabilities,
			Selected:      r.Selected,
		})
	}
	for _, f := range report.Failures {
		doc.Failures = append(doc.Failures, FailureReport{
			SectorID: f.SectorID,
			Error:    f.Err.Error(),
		})
	}

	return doc
}

// WriteResults writes the export document as JSON, snappy-compressed when
// compress is true.
func WriteResults(path string, doc ExportDocument, compress bool) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if compress {
		data = snappy.Encode(nil, data)
	}

	return os.WriteFile(path, data, 0o644)
}

// ReadResults reads an export document written by WriteResults
func ReadResults(path string, compressed bool) (ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ExportDocument{}, err
	}

	if compressed {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return ExportDocument{}, fmt.Errorf("decompress results: %w", err)
		}
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ExportDocument{}, fmt.Errorf("parse results: %w", err)
	}
	return doc, nil
}
