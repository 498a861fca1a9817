package ingest

import (
	"fmt"
	"strings"

	"github.com/Aarondulong/EH804Project/codebook"
)

// Channel is the canonical source name of a measurement column. Channel names
// match codebook.Column.Source so the normalizer can select them directly.
type Channel string

const (
	ChannelPM25     Channel = "opc_pm25"
	ChannelPM10     Channel = "opc_pm10"
	ChannelPM25Env  Channel = "pm25_env"
	ChannelPM10Env  Channel = "pm10_env"
	ChannelRH       Channel = "sample_rh"
	ChannelTemp     Channel = "sample_temp"
	ChannelFlag     Channel = "flag"
	ChannelIAQ      Channel = "iaq"
	ChannelGasTemp  Channel = "temperature"
	ChannelGasRH    Channel = "humidity"
	ChannelPressure Channel = "pressure"
	ChannelGasOhms  Channel = "gas_resistance"
)

// ColumnSpec declares one channel column of an export format.
type ColumnSpec struct {
	Channel  Channel
	Aliases  []string
	Required bool
}

// Format describes the export layout of one instrument family.
type Format struct {
	Family codebook.Family
	// PreambleLines is the number of device identity lines before the header row.
	PreambleLines int
	// TimestampAliases name the timestamp column; the first alias present in
	// the header wins. A bare time-of-day column is never accepted.
	TimestampAliases []string
	Columns          []ColumnSpec
}

// Particulate is the MOD-PM export: three identity lines, then the header row.
var Particulate = Format{
	Family:           codebook.FamilyParticulate,
	PreambleLines:    3,
	TimestampAliases: []string{"timestamp_iso", "timestamp"},
	Columns: []ColumnSpec{
		{Channel: ChannelPM25, Required: true},
		{Channel: ChannelPM10, Required: true},
		{Channel: ChannelPM25Env},
		{Channel: ChannelPM10Env},
		{Channel: ChannelRH, Aliases: []string{"rh", "rh_manifold"}},
		{Channel: ChannelTemp, Aliases: []string{"temp", "temp_manifold"}},
		{Channel: ChannelFlag},
	},
}

// Gas is the low-cost gas sensor export: a plain header row followed by data.
var Gas = Format{
	Family:           codebook.FamilyGas,
	TimestampAliases: []string{"timestamp", "timestamp_iso", "datetime"},
	Columns: []ColumnSpec{
		{Channel: ChannelIAQ, Aliases: []string{"iaq_index", "static_iaq"}, Required: true},
		{Channel: ChannelGasTemp, Aliases: []string{"temp", "temperature_c"}},
		{Channel: ChannelGasRH, Aliases: []string{"rh", "humidity_pct"}},
		{Channel: ChannelPressure, Aliases: []string{"pressure_hpa"}},
		{Channel: ChannelGasOhms, Aliases: []string{"gas", "gas_ohms"}},
	},
}

// FormatFor returns the export format of a family.
func FormatFor(f codebook.Family) (Format, error) {
	switch f {
	case codebook.FamilyParticulate:
		return Particulate, nil
	case codebook.FamilyGas:
		return Gas, nil
	default:
		return Format{}, fmt.Errorf("unknown instrument family %q", f)
	}
}

// FormatByName parses a family name such as "modpm" or "gas".
func FormatByName(name string) (Format, error) {
	return FormatFor(codebook.Family(strings.ToLower(strings.TrimSpace(name))))
}

// Channels lists the channels of the format in declaration order.
func (f Format) Channels() []Channel {
	out := make([]Channel, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Channel
	}
	return out
}

func (c ColumnSpec) names() []string {
	return append([]string{string(c.Channel)}, c.Aliases...)
}
