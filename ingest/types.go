package ingest

import (
	"time"

	"github.com/Aarondulong/EH804Project/metadata"
)

// DeviceHeader is the identity preamble of a MOD-PM export.
type DeviceHeader struct {
	Model    string `json:"device_model,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
	Serial   string `json:"device_sn,omitempty"`
}

// InstrumentID derives the lookup key from the serial, falling back to the device id.
func (h DeviceHeader) InstrumentID() metadata.InstrumentID {
	if id := metadata.NormalizeInstrumentID(h.Serial); id != "" {
		return id
	}
	return metadata.NormalizeInstrumentID(h.DeviceID)
}

// RawRecord is one measurement row as exported by an instrument.
type RawRecord struct {
	Timestamp time.Time
	// Values holds the selected channels; a nil or absent entry is a missing reading.
	Values map[Channel]*float64
	Line   int
}

// Value returns the reading for ch, or nil when it is missing.
func (r RawRecord) Value(ch Channel) *float64 {
	return r.Values[ch]
}

// File is a parsed export file.
type File struct {
	Path    string
	Format  Format
	Header  DeviceHeader
	Columns []Channel // channels present in the file, in format order
	Records []RawRecord
}
