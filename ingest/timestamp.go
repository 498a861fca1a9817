package ingest

import (
	"errors"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Fractional seconds are accepted by
// time.Parse even when a layout does not mention them.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	zoneNameLayout,
	"2006-1-2 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-1-2 15:04",
	"2006/01/02 15:04:05",
	"2006/1/2 15:04:05",
	"2006-01-02",
}

// zoneNameLayout accepts a trailing zone abbreviation. time.Parse gives
// abbreviations it cannot resolve a zero offset, so only UTC and GMT are kept.
const zoneNameLayout = "2006-01-02 15:04:05 MST"

var (
	errTimestampLayout = errors.New("unrecognized timestamp layout")
	errTimestampZone   = errors.New("unsupported time zone abbreviation")
)

// ParseTimestamp parses an instrument timestamp. Values without a zone are UTC;
// the result is always in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == zoneNameLayout {
			if name, _ := ts.Zone(); name != "UTC" && name != "GMT" {
				return time.Time{}, errTimestampZone
			}
		}
		return ts.UTC(), nil
	}
	return time.Time{}, errTimestampLayout
}
