package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pitchdeck-scraper/internal/scrape/types"

	"github.com/stretchr/testify/require"
)

func site() *httptest.Server {
	pages := map[string]string{
		"/pitch_cards/mindfulness": `<table><tr><td><a href="/c/1">1</a></td></tr></table>`,
		"/c/1":                     `<h1 class="company_name">Calm</h1><p class="investor_notes">Notes</p><div class="company_logo"><img src="/calm.png"></div>`,
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yml")
	body := fmt.Sprintf(`
http:
  base_url: %s
pipelines:
  companies:
    output: %s
  pitches:
    output: %s
store:
  path: %s
`, baseURL, filepath.Join(dir, "companies.json"), filepath.Join(dir, "pitches.json"), filepath.Join(dir, "runs.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	return rootCmd.ExecuteContext(context.Background())
}

func TestCLI_CompaniesThenHistory(t *testing.T) {
	srv := site()
	defer srv.Close()
	dir := t.TempDir()
	path := writeConfig(t, dir, srv.URL)

	require.NoError(t, execute("--config", path, "--log-level", "error", "companies"))

	b, err := os.ReadFile(filepath.Join(dir, "companies.json"))
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"Calm","description":"Notes","logoUrl":"/calm.png"}]`, string(b))

	require.NoError(t, execute("--config", path, "--log-level", "error", "history", "--limit", "5"))
}

func TestCLI_ExitCodes(t *testing.T) {
	srv := site()
	defer srv.Close()
	dir := t.TempDir()
	path := writeConfig(t, dir, srv.URL)

	err := execute("--config", path, "--log-level", "error", "investors")
	require.Equal(t, types.ExitConfiguration, types.ExitCode(err))

	err = execute("--config", path, "--log-level", "error")
	require.Equal(t, types.ExitConfiguration, types.ExitCode(err))

	err = execute("--config", path, "--log-level", "error", "--bogus-flag", "companies")
	require.Equal(t, types.ExitConfiguration, types.ExitCode(err))

	// pitches index is not served
	err = execute("--config", path, "--log-level", "error", "pitches")
	require.Equal(t, types.ExitTransport, types.ExitCode(err))
	_, statErr := os.Stat(filepath.Join(dir, "pitches.json"))
	require.True(t, os.IsNotExist(statErr))
}

func TestCLI_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "ftp://nowhere")

	err := execute("--config", path, "companies")
	require.Equal(t, types.ExitConfiguration, types.ExitCode(err))
}

func TestCLI_InitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.yml")
	require.NoError(t, execute("--config", path, "--log-level", "error", "init-config"))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown", "k", "v")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "k=v")
}
