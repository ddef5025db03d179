package cli

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/apflab/batchplan/internal/config"
	"github.com/apflab/batchplan/internal/ingest"
	"github.com/apflab/batchplan/internal/logging"
	"github.com/apflab/batchplan/internal/sample"
)

// effectiveConfig returns a copy of the global config that a command may
// override with its flags without touching the shared instance.
func effectiveConfig() config.Config {
	return *config.GetGlobalConfig()
}

// delimiterRune returns the first rune of s, or zero for an empty string.
func delimiterRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// loadDataset reads the registry at path using the input section of cfg.
func loadDataset(ctx context.Context, cfg config.Config, path string) (*sample.Dataset, error) {
	log := logging.FromContext(ctx)

	ds, err := ingest.LoadWithContext(ctx, path, ingest.Options{
		Sheet:     cfg.Input.Sheet,
		Delimiter: delimiterRune(cfg.Input.Delimiter),
	})
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("input_path", path).Msg("failed to load registry")
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debug().Ctx(ctx).Int("records", ds.Len()).Int("columns", len(ds.Columns)).Msg("registry loaded")
	return ds, nil
}
