package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/engine/batch"
)

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	layout := cfg.Batch.Layout()
	assert.Equal(t, 80, layout.SamplesPerBatch)
	assert.Equal(t, []int{24, 24, 32}, layout.SegmentSizes)
	assert.Equal(t, []int{3, 3, 2}, layout.QCCounts)
	assert.Equal(t, []string{"Blank", "QC_Inter_Batch", "QC_Intra_Batch"}, layout.QCLabels)
	assert.Equal(t, "Família", cfg.Columns.Family)
	assert.Equal(t, "Gênero", cfg.Columns.Genus)
	assert.Equal(t, "resumo_familia_genero_por_batch.csv", cfg.Output.SummaryFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:    "segment sum",
			mutate:  func(c *config.Config) { c.Batch.SamplesPerBatch = 96 },
			wantErr: batch.ErrStructureMismatch,
		},
		{
			name:    "unsupported version",
			mutate:  func(c *config.Config) { c.Version = "2.0.0" },
			wantErr: config.ErrUnsupportedVersion,
		},
		{
			name:    "garbage version",
			mutate:  func(c *config.Config) { c.Version = "latest" },
			wantErr: config.ErrUnsupportedVersion,
		},
		{
			name:    "empty family column",
			mutate:  func(c *config.Config) { c.Columns.Family = "" },
			wantErr: config.ErrEmptyColumn,
		},
		{
			name:    "tab delimiter is fine",
			mutate:  func(c *config.Config) { c.Output.Delimiter = "\t" },
			wantErr: nil,
		},
		{
			name:    "multi-char delimiter",
			mutate:  func(c *config.Config) { c.Input.Delimiter = ";;" },
			wantErr: config.ErrInvalidDelimiter,
		},
		{
			name:    "workers",
			mutate:  func(c *config.Config) { c.Output.Workers = 0 },
			wantErr: config.ErrInvalidWorkers,
		},
		{
			name:    "log format",
			mutate:  func(c *config.Config) { c.Logging.Format = "xml" },
			wantErr: config.ErrInvalidLogFormat,
		},
		{
			name:    "empty output dir",
			mutate:  func(c *config.Config) { c.Output.Dir = "" },
			wantErr: config.ErrEmptyOutputDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Batch.QCLabels = []string{"Blank"}

	require.NoError(t, cfg.Save(path, false))
	assert.Error(t, cfg.Save(path, false), "existing file must not be overwritten")
	require.NoError(t, cfg.Save(path, true))

	loaded := config.New()
	require.NoError(t, config.ShallowMergeYAML(loaded, path))
	assert.Equal(t, cfg, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
