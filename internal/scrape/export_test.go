package scrape

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pitchdeck-scraper/internal/domain"
	"pitchdeck-scraper/internal/scrape/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "companies.json")
	recs := []domain.CompanyRecord{
		{Name: "A", Description: "first", LogoURL: "/a.png"},
		{Name: "B \"quoted\"", Description: "ünïcode", LogoURL: ""},
	}
	require.NoError(t, Export(path, recs))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "\n")

	var back []domain.CompanyRecord
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, recs, back)
}

func TestExport_EmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitches.json")
	require.NoError(t, Export[domain.PitchRecord](path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))
}

func TestExport_SerializationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	err := Export(path, []float64{math.NaN()})
	var se *types.SerializationError
	require.True(t, errors.As(err, &se))
	require.Equal(t, types.ExitSerialization, types.ExitCode(err))

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestExport_FileError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := Export(filepath.Join(blocker, "out.json"), []domain.PitchRecord{})
	var fe *types.FileError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, types.ExitFile, types.ExitCode(err))
}

func TestExport_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.json")
	require.NoError(t, Export(path, []domain.CompanyRecord{{Name: "x"}}))
	require.NoError(t, Export(path, []domain.CompanyRecord{{Name: "y"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), e.Name())
	}
}

func TestExport_OnlyOutputFileRemains(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companies.json")
	require.NoError(t, Export(path, []domain.CompanyRecord{{Name: "x"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"companies.json"}, names)
}
