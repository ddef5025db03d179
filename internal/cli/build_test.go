package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apflab/batchplan/internal/cli"
	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/ingest"
)

func TestBuild_WritesBatchesAndSummary(t *testing.T) {
	setupCLITest(t)

	input := smallRegistry(t)
	out := filepath.Join(t.TempDir(), "batches")

	args := append([]string{"build", input, "--out", out}, smallLayoutArgs()...)
	output, err := execute(t, args...)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Batches: 2")
	assert.Contains(t, output, "Samples: 8")

	for _, name := range []string{"batch_1.csv", "batch_2.csv"} {
		data, readErr := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, readErr, name)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		// header + 4 samples + 3 QC cycles of 2 labels
		assert.Len(t, lines, 1+4+6, name)
		assert.Equal(t, registryHeader+",Tipo,Batch", lines[0])
		assert.Equal(t, ",,,Blank,QC,"+strings.TrimSuffix(name, ".csv"), lines[1])
	}

	summary, err := os.ReadFile(filepath.Join(out, config.DefaultSummaryFile))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Family,Genus,Count,Batch",
		"Acanthaceae,Justicia,4,batch_1",
		"Acanthaceae,Justicia,1,batch_2",
		"Acanthaceae,Ruellia,2,batch_2",
		"Bignoniaceae,Tabebuia,1,batch_2",
	}, "\n")+"\n", string(summary))
}

func TestBuild_DryRunWritesNothing(t *testing.T) {
	setupCLITest(t)

	input := smallRegistry(t)
	out := filepath.Join(t.TempDir(), "batches")

	args := append([]string{"build", input, "--out", out, "--dry-run"}, smallLayoutArgs()...)
	output, err := execute(t, args...)
	require.NoError(t, err, output)

	assert.Contains(t, output, "Batches: 2")
	assert.Contains(t, output, "Bignoniaceae")
	assert.NotContains(t, output, "Summary:")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestBuild_RegistryOnly(t *testing.T) {
	setupCLITest(t)

	input := smallRegistry(t)
	out := filepath.Join(t.TempDir(), "batches")

	args := append([]string{"build", input, "--out", out, "--registry-only"}, smallLayoutArgs()...)
	output, err := execute(t, args...)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Samples: 7")

	data, err := os.ReadFile(filepath.Join(out, "batch_1.csv"))
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "Registro da amostra APF,"), header)
}

func TestBuild_StructureMismatchIsConfigError(t *testing.T) {
	setupCLITest(t)

	input := smallRegistry(t)
	_, err := execute(t, "build", input, "--samples-per-batch", "5", "--segment-sizes", "2,2",
		"--qc-counts", "1,1", "--dry-run")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfig, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "sum(segment_sizes)=4")
}

func TestBuild_MissingGroupingColumnIsDataShapeError(t *testing.T) {
	setupCLITest(t)

	input := smallRegistry(t)
	args := append([]string{"build", input, "--genus-col", "Subgenus", "--dry-run"}, smallLayoutArgs()...)
	_, err := execute(t, args...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataShape, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "Subgenus")
}

func TestBuild_EmptyRegistry(t *testing.T) {
	setupCLITest(t)

	input := writeRegistry(t)
	out := filepath.Join(t.TempDir(), "batches")

	output, err := execute(t, "build", input, "--out", out)
	require.NoError(t, err, output)
	assert.Contains(t, output, "Batches: 0")
	assert.Contains(t, output, "No samples allocated.")

	summary, err := os.ReadFile(filepath.Join(out, config.DefaultSummaryFile))
	require.NoError(t, err)
	assert.Equal(t, "Family,Genus,Count,Batch\n", string(summary))
}

func TestBuild_RequiresInput(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "build")
	require.Error(t, err)
}

func TestBuild_OpenDocumentRegistry(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "build", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "save them as .xlsx")

	path := filepath.Join(t.TempDir(), "registro.ods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	_, err = execute(t, "build", path, "--dry-run")
	require.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "save the registry as .xlsx")
}
