package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apflab/batchplan/internal/cli"
	"github.com/apflab/batchplan/internal/config"
)

const registryHeader = "Família,Gênero,Espécies,Registro da amostra APF"

// setupCLITest isolates the config directory and global state of one test.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)
}

// quietEnv is an env lookup that only silences logging.
func quietEnv(key string) (string, bool) {
	if key == config.EnvLogLevel {
		return "error", true
	}
	return "", false
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := cli.NewRootCmdWithEnv("test", quietEnv)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeRegistry writes a CSV registry with the default column names.
func writeRegistry(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registry.csv")
	content := registryHeader + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// smallLayoutArgs configures 4-sample batches with two segments.
func smallLayoutArgs() []string {
	return []string{
		"--samples-per-batch", "4",
		"--segment-sizes", "2,2",
		"--qc-counts", "1,1",
		"--qc-labels", "Blank,QC",
	}
}

// smallRegistry holds five Acanthaceae/Justicia, two Acanthaceae/Ruellia and
// one Bignoniaceae/Tabebuia sample.
func smallRegistry(t *testing.T) string {
	t.Helper()
	return writeRegistry(t,
		"Acanthaceae,Justicia,J. pectoralis,APF-001",
		"Acanthaceae,Ruellia,R. asperula,APF-002",
		"Acanthaceae,Justicia,J. gendarussa,APF-003",
		"Bignoniaceae,Tabebuia,T. aurea,APF-004",
		"Acanthaceae,Justicia,J. pectoralis,APF-005",
		"Acanthaceae,Justicia,J. calycina,",
		"Acanthaceae,Ruellia,R. brevifolia,APF-007",
		"Acanthaceae,Justicia,J. pectoralis,APF-008",
	)
}
