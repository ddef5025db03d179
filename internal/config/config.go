package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/apflab/batchplan/internal/engine/batch"
)

// Config file versioning.
const (
	// CurrentVersion is written by `config init`.
	CurrentVersion = "1.0.0"

	// SupportedVersions is the constraint a config file version must satisfy.
	SupportedVersions = "^1.0.0"
)

// Default column names of the extract registry spreadsheet.
const (
	DefaultFamilyColumn   = "Família"
	DefaultGenusColumn    = "Gênero"
	DefaultSpeciesColumn  = "Espécies"
	DefaultRegistryColumn = "Registro da amostra APF"
)

// Default input and output settings.
const (
	DefaultSheet       = "Sheet1"
	DefaultOutputDir   = "batches"
	DefaultSummaryFile = "resumo_familia_genero_por_batch.csv"
	DefaultDelimiter   = ","
	DefaultWorkers     = 4
)

// Validation errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrEmptyColumn        = errors.New("column name cannot be empty")
	ErrInvalidDelimiter   = errors.New("delimiter must be a single character")
	ErrInvalidLogFormat   = errors.New("log format must be console or json")
	ErrInvalidWorkers     = errors.New("output workers must be at least 1")
	ErrEmptyOutputDir     = errors.New("output directory cannot be empty")
)

// Config is the batchplan configuration.
type Config struct {
	Version string        `yaml:"version"`
	Batch   BatchConfig   `yaml:"batch"`
	Columns ColumnsConfig `yaml:"columns"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BatchConfig is the batch structure.
type BatchConfig struct {
	SamplesPerBatch    int      `yaml:"samples_per_batch"`
	SegmentSizes       []int    `yaml:"segment_sizes"`
	QCCountsPerSegment []int    `yaml:"qc_counts_per_segment"`
	QCLabels           []string `yaml:"qc_labels"`
}

// ColumnsConfig names the dataset columns batchplan reads.
type ColumnsConfig struct {
	Family   string `yaml:"family"`
	Genus    string `yaml:"genus"`
	Species  string `yaml:"species"`
	Registry string `yaml:"registry"`
}

// InputConfig controls dataset loading.
type InputConfig struct {
	// Sheet is the worksheet read from spreadsheet inputs.
	Sheet string `yaml:"sheet"`
	// Delimiter separates fields of delimited text inputs with a .csv extension.
	Delimiter string `yaml:"delimiter"`
}

// OutputConfig controls where batch tables are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	SummaryFile string `yaml:"summary_file"`
	Delimiter   string `yaml:"delimiter"`
	Workers     int    `yaml:"workers"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Batch: BatchConfig{
			SamplesPerBatch:    batch.DefaultSamplesPerBatch,
			SegmentSizes:       batch.DefaultSegmentSizes(),
			QCCountsPerSegment: batch.DefaultQCCounts(),
			QCLabels:           batch.DefaultQCLabels(),
		},
		Columns: ColumnsConfig{
			Family:   DefaultFamilyColumn,
			Genus:    DefaultGenusColumn,
			Species:  DefaultSpeciesColumn,
			Registry: DefaultRegistryColumn,
		},
		Input: InputConfig{
			Sheet:     DefaultSheet,
			Delimiter: DefaultDelimiter,
		},
		Output: OutputConfig{
			Dir:         DefaultOutputDir,
			SummaryFile: DefaultSummaryFile,
			Delimiter:   DefaultDelimiter,
			Workers:     DefaultWorkers,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Layout converts the batch section into an engine layout.
func (b BatchConfig) Layout() batch.Layout {
	return batch.Layout{
		SamplesPerBatch: b.SamplesPerBatch,
		SegmentSizes:    b.SegmentSizes,
		QCCounts:        b.QCCountsPerSegment,
		QCLabels:        b.QCLabels,
	}
}

// Validate checks the whole configuration. Batch structure errors are
// returned unwrapped from batch.Layout.Validate so callers can match them.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}
	if err := c.Batch.Layout().Validate(); err != nil {
		return err
	}

	for name, value := range map[string]string{
		"family":   c.Columns.Family,
		"genus":    c.Columns.Genus,
		"registry": c.Columns.Registry,
	} {
		if value == "" {
			return fmt.Errorf("%w: columns.%s", ErrEmptyColumn, name)
		}
	}

	for name, value := range map[string]string{
		"input.delimiter":  c.Input.Delimiter,
		"output.delimiter": c.Output.Delimiter,
	} {
		if utf8.RuneCountInString(value) != 1 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidDelimiter, name, value)
		}
	}

	if c.Output.Dir == "" {
		return ErrEmptyOutputDir
	}
	if c.Output.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Output.Workers)
	}

	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedVersion, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, SupportedVersions)
	}
	return nil
}

// Save writes c as YAML to path. An existing file is only replaced when force is set.
func (c *Config) Save(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = EnsureParentDir(path); err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
