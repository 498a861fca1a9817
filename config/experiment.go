package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/Aarondulong/EH804Project/codebook"
	"github.com/Aarondulong/EH804Project/ingest"
	"github.com/Aarondulong/EH804Project/metadata"
	"github.com/Aarondulong/EH804Project/qaerrors"
	"github.com/Aarondulong/EH804Project/table"
)

// Experiment describes a field campaign: metadata labels, cleaning runs and the
// master tables joined from them. List order matters; a repeated key in
// locations, treatments or sessions overwrites the earlier entry.
type Experiment struct {
	Settings   Settings        `yaml:"settings"`
	Locations  []LocationLabel `yaml:"locations" validate:"dive"`
	Treatments []DateLabel     `yaml:"treatments" validate:"dive"`
	Sessions   []DateLabel     `yaml:"sessions" validate:"dive"`
	Runs       []RunSpec       `yaml:"runs" validate:"dive"`
	Joins      []JoinSpec      `yaml:"joins" validate:"dive"`

	baseDir string
}

// LocationLabel assigns a proximity label to an instrument.
type LocationLabel struct {
	Instrument string `yaml:"instrument" validate:"required"`
	Label      string `yaml:"label" validate:"required"`
}

// DateLabel assigns a treatment or session label to a calendar date.
type DateLabel struct {
	Date  string `yaml:"date" validate:"required,datekey"`
	Label string `yaml:"label" validate:"required"`
}

// RunSpec is one cleaning run over a single export file.
type RunSpec struct {
	Name       string `yaml:"name" validate:"required"`
	Family     string `yaml:"family" validate:"required,family"`
	Input      string `yaml:"input" validate:"required"`
	Output     string `yaml:"output" validate:"required"`
	Start      string `yaml:"start" validate:"omitempty,timestamp"`
	End        string `yaml:"end" validate:"omitempty,timestamp"`
	Instrument string `yaml:"instrument"`
}

// JoinSpec concatenates cleaned tables into one master table.
type JoinSpec struct {
	Output string   `yaml:"output" validate:"required"`
	Inputs []string `yaml:"inputs" validate:"min=1,dive,required"`
	Mode   string   `yaml:"mode" validate:"omitempty,joinmode"`
}

// LoadFile reads an experiment file. Settings come from the defaults, then the
// file's settings block, then QA_* environment variables.
func LoadFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, qaerrors.NewConfigError("read experiment file", err).WithContext("path", path)
	}
	exp, err := ParseExperiment(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	exp.baseDir = filepath.Dir(path)
	return exp, nil
}

// ParseExperiment decodes and validates an experiment document. Relative paths
// resolve against the working directory.
func ParseExperiment(data []byte) (*Experiment, error) {
	var exp Experiment
	if err := yaml.UnmarshalStrict(data, &exp); err != nil {
		return nil, qaerrors.NewConfigError("parse experiment yaml", err)
	}

	var env Settings
	if err := applyEnv(&env); err != nil {
		return nil, err
	}
	exp.Settings = mergeSettings(mergeSettings(*Default(), exp.Settings), env)

	if err := validate(&exp); err != nil {
		return nil, err
	}
	for _, r := range exp.Runs {
		if _, _, err := r.Window(); err != nil {
			return nil, err
		}
	}
	if len(exp.Joins) > 0 && exp.OutputFormat() != table.FormatCSV {
		return nil, qaerrors.NewValidationError("joins read csv tables; output format must be csv", nil).
			WithContext("format", exp.Settings.Output.Format)
	}
	exp.baseDir = "."
	return &exp, nil
}

// Tables registers the experiment's labels in order.
func (e *Experiment) Tables() (*metadata.Tables, error) {
	t := metadata.New()
	for _, l := range e.Locations {
		if err := t.SetLocation(l.Instrument, l.Label); err != nil {
			return nil, err
		}
	}
	for _, l := range e.Treatments {
		if err := t.SetTreatment(l.Date, l.Label); err != nil {
			return nil, err
		}
	}
	for _, l := range e.Sessions {
		if err := t.SetSessionLabel(l.Date, l.Label); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// InputPath resolves a run input against the experiment file's directory.
func (e *Experiment) InputPath(p string) string {
	return resolve(e.baseDir, p)
}

// OutputPath resolves a table path against the configured output directory,
// which itself resolves against the experiment file's directory.
func (e *Experiment) OutputPath(p string) string {
	return resolve(resolve(e.baseDir, e.Settings.Output.Dir), p)
}

// OutputFormat is the parsed output format setting.
func (e *Experiment) OutputFormat() table.Format {
	f, _ := table.ParseFormat(e.Settings.Output.Format)
	return f
}

// Mode returns the join mode of j, falling back to the experiment default.
func (e *Experiment) Mode(j JoinSpec) table.JoinMode {
	mode := j.Mode
	if strings.TrimSpace(mode) == "" {
		mode = e.Settings.Output.JoinMode
	}
	m, _ := table.ParseJoinMode(mode)
	return m
}

// FamilyOf returns the parsed instrument family of r.
func (r RunSpec) FamilyOf() codebook.Family {
	return codebook.Family(strings.ToLower(strings.TrimSpace(r.Family)))
}

// Window parses the run's time window. Empty bounds are zero (open).
func (r RunSpec) Window() (start, end time.Time, err error) {
	if strings.TrimSpace(r.Start) != "" {
		if start, err = ingest.ParseTimestamp(r.Start); err != nil {
			return time.Time{}, time.Time{}, qaerrors.NewConfigError("parse run start", err).WithContext("run", r.Name)
		}
	}
	if strings.TrimSpace(r.End) != "" {
		if end, err = ingest.ParseTimestamp(r.End); err != nil {
			return time.Time{}, time.Time{}, qaerrors.NewConfigError("parse run end", err).WithContext("run", r.Name)
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return time.Time{}, time.Time{}, qaerrors.NewConfigError("run start is after end", nil).WithContext("run", r.Name)
	}
	return start, end, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
