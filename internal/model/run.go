package model

import "time"

// RunStatus represents the state of a region processing run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// StrategyBreakdown counts matches per cascade strategy for one dataset.
type StrategyBreakdown struct {
	StructuredID int `json:"structured_id"`
	AddressCity  int `json:"address_city"`
	AddressOnly  int `json:"address_only"`
}

// DatasetStats summarizes one secondary dataset's linkage pass.
type DatasetStats struct {
	Dataset    string            `json:"dataset"`
	SourceType string            `json:"source_type"`
	Kind       DatasetKind       `json:"kind"`
	Total      int               `json:"total"`
	Filtered   int               `json:"filtered"` // removed by jurisdiction filter
	Skipped    int               `json:"skipped"`  // blank-address anomalies
	Matched    int               `json:"matched"`  // secondary records matched
	Inserted   int               `json:"inserted"` // synthesized records
	Strategies StrategyBreakdown `json:"strategies"`
	Error      string            `json:"error,omitempty"` // schema error, dataset skipped
}

// LinkageRun is the persisted record of one region processing run.
type LinkageRun struct {
	ID         string         `json:"id"`
	Region     string         `json:"region"`
	FIPS       string         `json:"fips"`
	Status     RunStatus      `json:"status"`
	Records    int            `json:"records"`
	Inserted   int            `json:"inserted"`
	Updated    int            `json:"updated"`
	Datasets   []DatasetStats `json:"datasets,omitempty"`
	OutputFile string         `json:"output_file,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
