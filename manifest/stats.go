package manifest

import (
	"math"

	"github.com/Aarondulong/EH804Project/ingest"
)

// Summarize counts present and missing readings per channel and reports the
// range and mean of the present ones. Channels are reported in the given order.
func Summarize(records []ingest.RawRecord, channels []ingest.Channel) []ChannelStats {
	out := make([]ChannelStats, 0, len(channels))
	for _, ch := range channels {
		values := make([]float64, 0, len(records))
		for _, r := range records {
			if v := r.Value(ch); v != nil && isFinite(*v) {
				values = append(values, *v)
			}
		}
		s := ChannelStats{
			Channel: string(ch),
			Present: len(values),
			Missing: len(records) - len(values),
		}
		if len(values) > 0 {
			s.Min = floatPtr(minValue(values))
			s.Max = floatPtr(maxValue(values))
			s.Mean = floatPtr(avgValue(values))
		}
		out = append(out, s)
	}
	return out
}

func avgValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxValue(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func minValue(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func floatPtr(v float64) *float64 {
	return &v
}
