package pipeline

import (
	"sort"
	"time"

	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/metadata"
)

const timeLayout = "15:04:05"

type accumulator struct {
	sum   float64
	count int
}

type bucket struct {
	start time.Time
	acc   map[ingest.Channel]*accumulator
}

// Resample groups records into interval-wide buckets aligned to wall-clock
// boundaries in UTC and averages every channel over its present readings. Buckets
// without records are not emitted; a channel with no reading in a bucket stays nil.
// Rows are returned in time order with 1-based indices. A non-positive interval
// means DefaultInterval.
func Resample(records []ingest.RawRecord, interval time.Duration) []CleanedRecord {
	if interval <= 0 {
		interval = DefaultInterval
	}

	buckets := make(map[time.Time]*bucket)
	for _, r := range records {
		key := r.Timestamp.UTC().Truncate(interval)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{start: key, acc: make(map[ingest.Channel]*accumulator)}
			buckets[key] = b
		}
		for ch, v := range r.Values {
			a, ok := b.acc[ch]
			if !ok {
				a = &accumulator{}
				b.acc[ch] = a
			}
			if v == nil {
				continue
			}
			a.sum += *v
			a.count++
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	out := make([]CleanedRecord, len(ordered))
	for i, b := range ordered {
		values := make(map[ingest.Channel]*float64, len(b.acc))
		for ch, a := range b.acc {
			if a.count == 0 {
				values[ch] = nil
				continue
			}
			values[ch] = floatPtr(a.sum / float64(a.count))
		}
		out[i] = newRecord(i+1, b.start, values)
	}
	return out
}

// fromRaw converts filtered records one-to-one into cleaned rows.
func fromRaw(records []ingest.RawRecord) []CleanedRecord {
	out := make([]CleanedRecord, len(records))
	for i, r := range records {
		out[i] = newRecord(i+1, r.Timestamp, r.Values)
	}
	return out
}

func newRecord(index int, ts time.Time, values map[ingest.Channel]*float64) CleanedRecord {
	ts = ts.UTC()
	return CleanedRecord{
		Index:     index,
		Timestamp: ts,
		Date:      metadata.DateKeyOf(ts),
		Time:      ts.Format(timeLayout),
		Values:    values,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
