// Package ingest reads raw instrument exports into device headers and raw records.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads and parses an export file of the given format. The file is read
// completely and closed before parsing.
func ReadFile(path string, format Format) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qaerrors.NewIOError("read export file", err).WithContext("path", path)
	}
	f, err := parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Read parses an export from r.
func Read(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, qaerrors.NewIOError("read export", err)
	}
	return parse(data, format)
}

func parse(data []byte, format Format) (*File, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	out := &File{Format: format}
	body := data
	if format.PreambleLines > 0 {
		var preamble [][]byte
		for i := 0; i < format.PreambleLines; i++ {
			idx := bytes.IndexByte(body, '\n')
			if idx < 0 {
				return nil, qaerrors.NewFileFormatError(
					fmt.Sprintf("expected %d device preamble lines before the header row", format.PreambleLines), nil)
			}
			preamble = append(preamble, body[:idx])
			body = body[idx+1:]
		}
		out.Header = parsePreamble(preamble)
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, qaerrors.NewFileFormatError("missing column header row", nil)
	}
	if err != nil {
		return nil, qaerrors.NewFileFormatError("read column header row", err)
	}

	cols, err := resolveColumns(header, format)
	if err != nil {
		return nil, err
	}
	out.Columns = cols.channels

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, qaerrors.NewFileFormatError("malformed data row", err)
		}
		line, _ := reader.FieldPos(0)
		line += format.PreambleLines

		raw := cell(record, cols.timestamp)
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return nil, qaerrors.NewTimestampParseError(raw, line, err)
		}

		rec := RawRecord{
			Timestamp: ts,
			Values:    make(map[Channel]*float64, len(cols.channels)),
			Line:      line,
		}
		for i, ch := range cols.channels {
			rec.Values[ch] = parseReading(cell(record, cols.index[i]))
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

type columnIndex struct {
	timestamp int
	channels  []Channel
	index     []int
}

func resolveColumns(header []string, format Format) (columnIndex, error) {
	headerMap := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := headerMap[key]; !dup {
			headerMap[key] = i
		}
	}
	find := func(names []string) (int, bool) {
		for _, n := range names {
			if idx, ok := headerMap[strings.ToLower(n)]; ok {
				return idx, true
			}
		}
		return -1, false
	}

	out := columnIndex{}
	var missing []string

	ts, ok := find(format.TimestampAliases)
	if !ok {
		missing = append(missing, format.TimestampAliases[0])
	}
	out.timestamp = ts

	for _, col := range format.Columns {
		idx, ok := find(col.names())
		if !ok {
			if col.Required {
				missing = append(missing, string(col.Channel))
			}
			continue
		}
		out.channels = append(out.channels, col.Channel)
		out.index = append(out.index, idx)
	}

	if len(missing) > 0 {
		return columnIndex{}, qaerrors.NewFileFormatError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("family", format.Family)
	}
	return out, nil
}

// parsePreamble reads "key,value" identity lines. Lines that do not look like a
// known key/value pair are ignored.
func parsePreamble(lines [][]byte) DeviceHeader {
	var h DeviceHeader
	for _, line := range lines {
		r := csv.NewReader(bytes.NewReader(line))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		fields, err := r.Read()
		if err != nil || len(fields) < 2 {
			continue
		}
		value := strings.TrimSpace(fields[1])
		switch preambleKey(fields[0]) {
		case "devicemodel", "model":
			h.Model = value
		case "deviceid", "id":
			h.DeviceID = value
		case "devicesn", "sn", "serial", "serialnumber", "deviceserial":
			h.Serial = value
		}
	}
	return h
}

func preambleKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseReading returns nil for empty, NaN-like or non-numeric cells.
func parseReading(s string) *float64 {
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null", "none", "-":
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		return nil
	}
	return &v
}
