// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/probe-ips/internal/pdftext/pdftexttest"
	"github.com/pdiddy/probe-ips/pkg/types"
)

const tablePage = "IP Probes by Region Available\nNorth America\n192.168.1.1  2610:a1:00AA:128::1\n"

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func newPDFServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(url string) types.Config {
	cfg := types.DefaultConfig()
	cfg.URL = url
	return cfg
}

func TestRun_StdoutJSON(t *testing.T) {
	ts := newPDFServer(t, http.StatusOK)
	doc := pdftexttest.New("Introduction", tablePage)
	var stdout bytes.Buffer
	log, logs := observedLogger()

	err := Run(context.Background(), testConfig(ts.URL), Deps{
		Client: ts.Client(),
		Opener: pdftexttest.Opener(doc),
		Stdout: &stdout,
	}, log)
	require.NoError(t, err)

	var got []types.RegionEntry
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, []types.RegionEntry{{
		Region: "North America",
		IPv4:   []string{"192.168.1.1"},
		IPv6:   []string{"2610:a1:00AA:128::1"},
	}}, got)
	assert.True(t, doc.Closed)
	assert.Equal(t, 1, doc.Calls[2], "page text is extracted once")
	assert.Equal(t, 1, logs.FilterMessage("Found potential table pages: [2]").Len())
}

func TestRun_WritesFile(t *testing.T) {
	ts := newPDFServer(t, http.StatusOK)
	cfg := testConfig(ts.URL)
	cfg.Format = types.FormatCSV
	cfg.Output = filepath.Join(t.TempDir(), "probes.csv")
	var stdout bytes.Buffer
	log, logs := observedLogger()

	err := Run(context.Background(), cfg, Deps{
		Client: ts.Client(),
		Opener: pdftexttest.Opener(pdftexttest.New(tablePage)),
		Stdout: &stdout,
	}, log)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "Region,Type,IP Address\n\"North America\",IPv4,192.168.1.1\n\"North America\",IPv6,2610:a1:00AA:128::1\n", string(data))
	assert.Empty(t, stdout.String())
	assert.Equal(t, 1, logs.FilterMessage("Data saved to "+cfg.Output).Len())
}

func TestRun_FetchFailure(t *testing.T) {
	ts := newPDFServer(t, http.StatusNotFound)
	log, _ := observedLogger()

	err := Run(context.Background(), testConfig(ts.URL), Deps{
		Client: ts.Client(),
		Opener: pdftexttest.Opener(pdftexttest.New(tablePage)),
		Stdout: &bytes.Buffer{},
	}, log)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestRun_NoData(t *testing.T) {
	tests := []struct {
		name string
		deps func(d *Deps)
	}{
		{
			name: "no anchor anywhere",
			deps: func(d *Deps) { d.Opener = pdftexttest.Opener(pdftexttest.New("nothing", "here")) },
		},
		{
			name: "opener fails",
			deps: func(d *Deps) { d.Opener = pdftexttest.FailingOpener(errors.New("encrypted")) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newPDFServer(t, http.StatusOK)
			var stdout bytes.Buffer
			deps := Deps{Client: ts.Client(), Stdout: &stdout}
			tt.deps(&deps)
			log, _ := observedLogger()

			err := Run(context.Background(), testConfig(ts.URL), deps, log)
			assert.ErrorIs(t, err, ErrNoData)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_PreflightFailureIsWarning(t *testing.T) {
	ts := newPDFServer(t, http.StatusOK)
	var stdout bytes.Buffer
	log, logs := observedLogger()

	err := Run(context.Background(), testConfig(ts.URL), Deps{
		Client:    ts.Client(),
		Opener:    pdftexttest.Opener(pdftexttest.New(tablePage)),
		Stdout:    &stdout,
		Preflight: func([]byte) (int, error) { return 0, errors.New("xref broken") },
	}, log)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "North America")

	warned := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("PDF validation failed, extracting anyway: xref broken")
	assert.Equal(t, 1, warned.Len())
}

func TestRun_SerializeFailureStillSucceeds(t *testing.T) {
	ts := newPDFServer(t, http.StatusOK)
	cfg := testConfig(ts.URL)
	cfg.Output = filepath.Join(t.TempDir(), "missing-dir", "out.json")
	log, logs := observedLogger()

	err := Run(context.Background(), cfg, Deps{
		Client: ts.Client(),
		Opener: pdftexttest.Opener(pdftexttest.New(tablePage)),
		Stdout: &bytes.Buffer{},
	}, log)
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestProcess_FallbackRange(t *testing.T) {
	pages := make([]string, 203)
	for i := range pages {
		pages[i] = "filler"
	}
	pages[201] = "ip-probes by-region\nSouth America\n"
	pages[202] = "200.1.1.1"

	cfg := types.DefaultConfig()
	cfg.Locate.Phrases = []string{"no such phrase"}
	log, logs := observedLogger()

	got := Process(nil, cfg, Deps{Opener: pdftexttest.Opener(pdftexttest.New(pages...))}, log)

	// The fallback pages lack the anchor, so nothing is extracted.
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("No table pages found. Trying original pages 202-203...").Len())
}

func TestProcess_FallbackExtracts(t *testing.T) {
	pages := make([]string, 203)
	for i := range pages {
		pages[i] = "filler"
	}
	pages[201] = "IP Probes by Region Available\nSouth America\n"
	pages[202] = "200.1.1.1"

	cfg := types.DefaultConfig()
	cfg.Locate.Phrases = []string{"no such phrase"}
	log, _ := observedLogger()

	got := Process(nil, cfg, Deps{Opener: pdftexttest.Opener(pdftexttest.New(pages...))}, log)
	require.Len(t, got, 1)
	assert.Equal(t, "South America", got[0].Region)
	assert.Equal(t, []string{"200.1.1.1"}, got[0].IPv4)
}

func TestProcess_VerboseDump(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Verbose = true
	var diag bytes.Buffer
	log, _ := observedLogger()

	got := Process(nil, cfg, Deps{
		Opener: pdftexttest.Opener(pdftexttest.New("intro", tablePage)),
		Diag:   &diag,
	}, log)
	require.Len(t, got, 1)
	assert.Contains(t, diag.String(), "--- PAGE 2 CONTENT ---")
	assert.NotContains(t, diag.String(), "--- PAGE 1 CONTENT ---")
}

func TestProcess_VerboseFallbackWarnsMissingPages(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Verbose = true
	var diag bytes.Buffer
	log, _ := observedLogger()

	got := Process(nil, cfg, Deps{
		Opener: pdftexttest.Opener(pdftexttest.New("nothing")),
		Diag:   &diag,
	}, log)
	assert.Empty(t, got)
	assert.Contains(t, diag.String(), "Warning: Page 202 does not exist in the PDF")
	assert.Contains(t, diag.String(), "Warning: Page 203 does not exist in the PDF")
}
