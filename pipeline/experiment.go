package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/Aarondulong/EH804Project/config"
	"github.com/Aarondulong/EH804Project/table"
)

// ExperimentResult collects the outcome of every run and join of an experiment.
type ExperimentResult struct {
	Runs  []Result     `json:"runs"`
	Joins []JoinResult `json:"joins"`
}

// JoinResult describes one written master table.
type JoinResult struct {
	OutputPath string         `json:"output_path"`
	Inputs     int            `json:"inputs"`
	Rows       int            `json:"rows"`
	Mode       table.JoinMode `json:"mode"`
}

// RunExperiment registers the experiment's labels, cleans every run in file order
// and then writes the joins. The first failure stops the experiment. runID is
// recorded in every run manifest.
func RunExperiment(exp *config.Experiment, logger *slog.Logger, runID string) (*ExperimentResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tables, err := exp.Tables()
	if err != nil {
		return nil, fmt.Errorf("register labels: %w", err)
	}
	locations, treatments, sessions := tables.Len()
	logger.Info("labels registered",
		slog.Int("locations", locations),
		slog.Int("treatments", treatments),
		slog.Int("sessions", sessions))

	labels := tables.Snapshot()
	format := exp.OutputFormat()
	out := &ExperimentResult{}

	for _, rs := range exp.Runs {
		start, end, err := rs.Window()
		if err != nil {
			return out, err
		}
		res, err := Run(Options{
			InputPath:    exp.InputPath(rs.Input),
			Family:       rs.FamilyOf(),
			OutputPath:   exp.OutputPath(rs.Output),
			Start:        start,
			End:          end,
			Interval:     exp.Settings.Pipeline.Interval,
			InstrumentID: rs.Instrument,
			Labels:       labels,
			Format:       format,
			RunID:        runID,
			Logger:       logger.With(slog.String("run", rs.Name)),
		})
		if err != nil {
			return out, fmt.Errorf("run %s: %w", rs.Name, err)
		}
		out.Runs = append(out.Runs, *res)
	}

	for _, j := range exp.Joins {
		inputs := make([]string, len(j.Inputs))
		for i, in := range j.Inputs {
			inputs[i] = exp.OutputPath(in)
		}
		mode := exp.Mode(j)
		path := exp.OutputPath(j.Output)
		joined, err := table.JoinFiles(path, inputs, mode, table.FormatCSV)
		if err != nil {
			return out, fmt.Errorf("join %s: %w", j.Output, err)
		}
		logger.Info("master table written",
			slog.String("output", path),
			slog.Int("inputs", len(inputs)),
			slog.Int("rows", joined.Len()),
			slog.String("mode", string(mode)))
		out.Joins = append(out.Joins, JoinResult{OutputPath: path, Inputs: len(inputs), Rows: joined.Len(), Mode: mode})
	}
	return out, nil
}
