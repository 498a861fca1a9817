// Package config loads run settings from the environment and experiment
// definitions from YAML files.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Aarondulong/EH804Project/qaerrors"
)

// EnvPrefix prefixes every environment variable, e.g. QA_LOGGING_LEVEL.
const EnvPrefix = "QA"

// DotEnvFile is loaded into the environment by Load when it exists.
const DotEnvFile = ".env"

// Settings are the process-wide knobs shared by all commands.
type Settings struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"omitempty,oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"omitempty,oneof=stderr stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"omitempty,format"`
	JoinMode string `yaml:"join_mode" envconfig:"JOIN_MODE" validate:"omitempty,joinmode"`
}

type PipelineConfig struct {
	Interval time.Duration `yaml:"interval" envconfig:"INTERVAL" validate:"gte=0"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/quantair.log",
		},
		Output: OutputConfig{
			Dir:      ".",
			Format:   "csv",
			JoinMode: "strict",
		},
		Pipeline: PipelineConfig{
			Interval: time.Minute,
		},
	}
}

// Load returns the default settings overridden by QA_* environment variables.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win over it.
func Load() (*Settings, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	var cfg Settings
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg = mergeSettings(*Default(), cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return qaerrors.NewConfigError("load dotenv file", err).WithContext("path", path)
	}
	return nil
}

func applyEnv(cfg *Settings) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return qaerrors.NewConfigError("load settings from env", err)
	}
	return nil
}

// mergeSettings fills every zero field of override from base.
func mergeSettings(base, override Settings) Settings {
	pick := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	pick(&override.Logging.Level, base.Logging.Level)
	pick(&override.Logging.Format, base.Logging.Format)
	pick(&override.Logging.Output, base.Logging.Output)
	pick(&override.Logging.FilePath, base.Logging.FilePath)
	pick(&override.Output.Dir, base.Output.Dir)
	pick(&override.Output.Format, base.Output.Format)
	pick(&override.Output.JoinMode, base.Output.JoinMode)
	if override.Pipeline.Interval == 0 {
		override.Pipeline.Interval = base.Pipeline.Interval
	}
	return override
}
