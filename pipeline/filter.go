package pipeline

import (
	"sort"
	"time"

	"github.com/Aarondulong/EH804Project/ingest"
)

// FilterWindow returns the records with start <= Timestamp <= end, sorted by
// timestamp. Records with equal timestamps keep their input order. A zero start or
// end leaves that side of the window open. The input slice is not modified.
func FilterWindow(records []ingest.RawRecord, start, end time.Time) []ingest.RawRecord {
	out := make([]ingest.RawRecord, 0, len(records))
	for _, r := range records {
		if !start.IsZero() && r.Timestamp.Before(start) {
			continue
		}
		if !end.IsZero() && r.Timestamp.After(end) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
