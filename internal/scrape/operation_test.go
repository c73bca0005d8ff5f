package scrape

import (
	"errors"
	"testing"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	for in, want := range map[string]Operation{
		"companies":   OpCompanies,
		"pitches":     OpPitches,
		"all":         OpAll,
		" Companies ": OpCompanies,
	} {
		got, err := ParseOperation(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}

	for _, bad := range []string{"", "company", "investors"} {
		_, err := ParseOperation(bad)
		var ce *types.ConfigurationError
		require.True(t, errors.As(err, &ce), bad)
		require.Equal(t, "operation", ce.Field)
		require.Equal(t, types.ExitConfiguration, types.ExitCode(err))
	}
}

func TestOperationPipelines(t *testing.T) {
	require.Equal(t, []string{"companies"}, OpCompanies.Pipelines())
	require.Equal(t, []string{"pitches"}, OpPitches.Pipelines())
	require.Equal(t, []string{"companies", "pitches"}, OpAll.Pipelines())
}
