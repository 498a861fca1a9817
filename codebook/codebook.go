// Package codebook is the published output column contract that downstream
// statistics and plotting depend on. It is the single source of truth for column
// names and ordering of every normalized table.
//
// Names are a compatibility contract: consumers select columns by exact name or by
// substring ("PM25", "PM10", "IAQ", "Temperature"), so no two columns of one family
// may contain another's measurement name.
package codebook

import "fmt"

// Kind is the value type of a column, used by typed writers such as parquet.
type Kind string

const (
	KindInt    Kind = "int"
	KindString Kind = "string"
	KindFloat  Kind = "float"
)

// Family identifies an instrument family and its export format.
type Family string

const (
	// FamilyParticulate is the MOD-PM particulate instrument.
	FamilyParticulate Family = "modpm"
	// FamilyGas is the low-cost gas/particulate sensor.
	FamilyGas Family = "gas"
)

// Source column names of the tagged table built by the pipeline before normalization.
const (
	SourceIndex      = "time_index"
	SourceInstrument = "instrument_id"
	SourceDate       = "date"
	SourceTime       = "time"
	SourceCondition  = "condition"
	SourceSession    = "session"
	SourceProximity  = "prox_to_xroad"
)

// Column is one codebook entry.
type Column struct {
	Name        string
	Source      string
	Kind        Kind
	Unit        string
	Description string
}

var (
	colTimeStamp  = Column{Name: "Time_Stamp", Source: SourceIndex, Kind: KindInt, Description: "Sequential 1-based row index within the table"}
	colInstrument = Column{Name: "Instrument_ID", Source: SourceInstrument, Kind: KindString, Description: "Instrument id (numeric suffix of the device serial)"}
	colDate       = Column{Name: "Date", Source: SourceDate, Kind: KindString, Description: "Calendar date (UTC), YYYY-MM-DD"}
	colTime       = Column{Name: "Time", Source: SourceTime, Kind: KindString, Unit: "UTC", Description: "Time of day (UTC), HH:MM:SS"}
	colCondition  = Column{Name: "Condition", Source: SourceCondition, Kind: KindString, Description: "Experimental treatment assigned to the run date"}
	colSession    = Column{Name: "Session", Source: SourceSession, Kind: KindString, Description: "Session label assigned to the run date"}
	colProximity  = Column{Name: "Prox_to_xroad", Source: SourceProximity, Kind: KindString, Description: "Instrument placement relative to the road"}
)

var families = map[Family][]Column{
	FamilyParticulate: {
		colTimeStamp,
		colInstrument,
		colDate,
		colTime,
		colCondition,
		colSession,
		colProximity,
		{Name: "Relative_Humidity", Source: "sample_rh", Kind: KindFloat, Unit: "%", Description: "Relative humidity at the sample inlet (%)"},
		{Name: "Temperature", Source: "sample_temp", Kind: KindFloat, Unit: "degC", Description: "Temperature at the sample inlet (degC)"},
		{Name: "PM25", Source: "opc_pm25", Kind: KindFloat, Unit: "ug/m3", Description: "PM2.5 from Optical Particle Counter (ug/m3)"},
		{Name: "PM10", Source: "opc_pm10", Kind: KindFloat, Unit: "ug/m3", Description: "PM10 from Optical Particle Counter (ug/m3)"},
	},
	FamilyGas: {
		colTimeStamp,
		colInstrument,
		colProximity,
		colDate,
		colTime,
		colCondition,
		colSession,
		{Name: "IAQ", Source: "iaq", Kind: KindFloat, Description: "Indoor air quality index reported by the gas sensor"},
	},
}

// Families lists the known families in a stable order.
func Families() []Family {
	return []Family{FamilyParticulate, FamilyGas}
}

// ForFamily returns a copy of the ordered codebook for f.
func ForFamily(f Family) ([]Column, error) {
	cols, ok := families[f]
	if !ok {
		return nil, fmt.Errorf("unknown instrument family %q", f)
	}
	return append([]Column(nil), cols...), nil
}

// Names returns the ordered output column names for f.
func Names(f Family) ([]string, error) {
	cols, err := ForFamily(f)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names, nil
}

// Lookup finds a column by output name across all families.
func Lookup(name string) (Column, bool) {
	for _, f := range Families() {
		for _, c := range families[f] {
			if c.Name == name {
				return c, true
			}
		}
	}
	return Column{}, false
}

// KindOf returns the kind of a named column, KindString when it is not in any codebook.
func KindOf(name string) Kind {
	if c, ok := Lookup(name); ok {
		return c.Kind
	}
	return KindString
}
