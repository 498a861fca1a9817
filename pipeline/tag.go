package pipeline

import "github.com/Aarondulong/EH804Project/metadata"

// labelRow is the row whose date keys treatment and session lookups.
const labelRow = 1

// ResolveLabels looks up the run's labels. Proximity is keyed by instrument,
// treatment and session by the date of the second row (the only row when there is
// one). Lookups that miss resolve to metadata.Unknown, and an empty run resolves
// every label to metadata.Unknown.
func ResolveLabels(rows []CleanedRecord, id metadata.InstrumentID, tables metadata.Snapshot) Labels {
	if len(rows) == 0 {
		return Labels{Condition: metadata.Unknown, Session: metadata.Unknown, Proximity: metadata.Unknown}
	}
	key := rows[min(labelRow, len(rows)-1)].Date
	return Labels{
		Condition: tables.Treatment(key),
		Session:   tables.Session(key),
		Proximity: tables.Proximity(id),
	}
}

// Tag returns a copy of rows with the instrument id and labels set on every row.
func Tag(rows []CleanedRecord, id metadata.InstrumentID, labels Labels) []CleanedRecord {
	if id == "" {
		id = metadata.Unknown
	}
	out := make([]CleanedRecord, len(rows))
	for i, r := range rows {
		r.InstrumentID = id
		r.Condition = orUnknown(labels.Condition)
		r.Session = orUnknown(labels.Session)
		r.Proximity = orUnknown(labels.Proximity)
		out[i] = r
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return metadata.Unknown
	}
	return s
}
