// Package metadata holds the experiment lookup tables used to tag cleaned runs:
// instrument → proximity-to-road, date → treatment and date → session.
//
// Tables are populated by the caller before cleaning; each cleaning run reads an
// immutable Snapshot. Setting an existing key overwrites it (last write wins) and
// affects only snapshots taken afterwards.
package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

// Unknown is the label returned for any key with no registered value.
const Unknown = "Unknown"

// DateLayout is the layout of date keys and of the Date output column.
const DateLayout = "2006-01-02"

// InstrumentID is the normalized instrument key, e.g. "384" for MOD-PM-00384.
type InstrumentID string

// DateKey is a calendar date in YYYY-MM-DD form.
type DateKey string

// ParseDateKey validates s and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", qaerrors.NewValidationError(fmt.Sprintf("date key %q is not YYYY-MM-DD", s), err)
	}
	return DateKey(d.Format(DateLayout)), nil
}

// DateKeyOf returns the UTC calendar date of t.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.UTC().Format(DateLayout))
}

type labelEntry struct {
	Key   string `validate:"required,max=64"`
	Label string `validate:"required,max=128,printable"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("printable", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if r < 0x20 {
				return false
			}
		}
		return true
	})
	if err != nil {
		panic(fmt.Sprintf("register printable validation: %v", err))
	}
	return v
}

// Tables are the three experiment lookup tables.
type Tables struct {
	proximity map[InstrumentID]string
	treatment map[DateKey]string
	session   map[DateKey]string
}

// New returns empty tables.
func New() *Tables {
	return &Tables{
		proximity: make(map[InstrumentID]string),
		treatment: make(map[DateKey]string),
		session:   make(map[DateKey]string),
	}
}

func checkEntry(kind, key, label string) error {
	if err := validate.Struct(labelEntry{Key: key, Label: label}); err != nil {
		return qaerrors.NewValidationError(fmt.Sprintf("invalid %s entry %q=%q", kind, key, label), err)
	}
	return nil
}

// SetLocation registers the proximity-to-road label for an instrument. The key may
// be a full device name ("MOD-PM-00384"), a serial ("00384") or the bare id ("384").
func (t *Tables) SetLocation(instrument, label string) error {
	label = strings.TrimSpace(label)
	if err := checkEntry("location", instrument, label); err != nil {
		return err
	}
	id := NormalizeInstrumentID(instrument)
	if id == "" {
		return qaerrors.NewValidationError(fmt.Sprintf("instrument key %q has no numeric id", instrument), nil)
	}
	t.proximity[id] = label
	return nil
}

// SetTreatment registers the treatment label for a calendar date (YYYY-MM-DD).
func (t *Tables) SetTreatment(date, label string) error {
	key, err := t.dateEntry("treatment", date, label)
	if err != nil {
		return err
	}
	t.treatment[key] = strings.TrimSpace(label)
	return nil
}

// SetSessionLabel registers the session label for a calendar date (YYYY-MM-DD).
func (t *Tables) SetSessionLabel(date, label string) error {
	key, err := t.dateEntry("session", date, label)
	if err != nil {
		return err
	}
	t.session[key] = strings.TrimSpace(label)
	return nil
}

func (t *Tables) dateEntry(kind, date, label string) (DateKey, error) {
	if err := checkEntry(kind, date, strings.TrimSpace(label)); err != nil {
		return "", err
	}
	return ParseDateKey(date)
}

// Len reports the number of entries in each table.
func (t *Tables) Len() (locations, treatments, sessions int) {
	return len(t.proximity), len(t.treatment), len(t.session)
}

// Snapshot copies the current contents for a cleaning run.
func (t *Tables) Snapshot() Snapshot {
	s := Snapshot{
		proximity: make(map[InstrumentID]string, len(t.proximity)),
		treatment: make(map[DateKey]string, len(t.treatment)),
		session:   make(map[DateKey]string, len(t.session)),
	}
	for k, v := range t.proximity {
		s.proximity[k] = v
	}
	for k, v := range t.treatment {
		s.treatment[k] = v
	}
	for k, v := range t.session {
		s.session[k] = v
	}
	return s
}

// Snapshot is a read-only copy of Tables. The zero value resolves everything to Unknown.
type Snapshot struct {
	proximity map[InstrumentID]string
	treatment map[DateKey]string
	session   map[DateKey]string
}

func lookup[K comparable](m map[K]string, k K) string {
	if v, ok := m[k]; ok {
		return v
	}
	return Unknown
}

// Proximity returns the proximity label for id, or Unknown.
func (s Snapshot) Proximity(id InstrumentID) string { return lookup(s.proximity, id) }

// Treatment returns the treatment label for date, or Unknown.
func (s Snapshot) Treatment(date DateKey) string { return lookup(s.treatment, date) }

// Session returns the session label for date, or Unknown.
func (s Snapshot) Session(date DateKey) string { return lookup(s.session, date) }
