package manifest

import "time"

const (
	// FormatVersion identifies the on-disk schema of run manifests.
	FormatVersion = "quantair_run_v1"
)

// Manifest records where a cleaned run came from and what it produced.
type Manifest struct {
	FormatVersion string         `json:"format_version"`
	GeneratedAt   time.Time      `json:"generated_at"`
	RunID         string         `json:"run_id,omitempty"`
	Source        Source         `json:"source"`
	Family        string         `json:"family"`
	Device        Device         `json:"device"`
	Labels        Labels         `json:"labels"`
	Window        Window         `json:"window"`
	IntervalS     float64        `json:"interval_s"`
	Tables        []TableInfo    `json:"tables"`
	Channels      []ChannelStats `json:"channels"`
	Schema        SchemaDetails  `json:"schema_description"`
}

// Source identifies the raw export file.
type Source struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	SHA256    string `json:"sha256"`
	SizeBytes int64  `json:"size_bytes"`
}

// Device is the identity preamble plus the derived lookup key.
type Device struct {
	Model        string `json:"device_model,omitempty"`
	DeviceID     string `json:"device_id,omitempty"`
	Serial       string `json:"device_sn,omitempty"`
	InstrumentID string `json:"instrument_id"`
}

// Labels are the metadata tags applied to the run.
type Labels struct {
	Condition string `json:"condition"`
	Session   string `json:"session"`
	Proximity string `json:"prox_to_xroad"`
}

// Window is the inclusive time filter; empty bounds are open.
type Window struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// TableInfo describes one written table. Path is relative to the manifest.
type TableInfo struct {
	Role    string   `json:"role"`
	Path    string   `json:"path"`
	Format  string   `json:"format"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

// ChannelStats summarizes one channel over the filtered records.
type ChannelStats struct {
	Channel string   `json:"channel"`
	Present int      `json:"present"`
	Missing int      `json:"missing"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
}

// SchemaDetails documents the table shape for downstream consumers.
type SchemaDetails struct {
	Codebook string   `json:"codebook"`
	Notes    []string `json:"notes"`
}
