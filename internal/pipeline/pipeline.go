// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs fetch, locate, extract, and export in sequence.
// Each stage logs and degrades on its own; Run only reports whether the
// document was obtained and whether any data came out of it.
package pipeline

import (
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/probe-ips/internal/acquire"
	"github.com/pdiddy/probe-ips/internal/export"
	"github.com/pdiddy/probe-ips/internal/extract"
	"github.com/pdiddy/probe-ips/internal/locate"
	"github.com/pdiddy/probe-ips/internal/pdftext"
	"github.com/pdiddy/probe-ips/pkg/types"
)

var (
	// ErrFetch means the source document could not be downloaded.
	ErrFetch = errors.New("failed to download PDF")

	// ErrNoData means no region entries were extracted.
	ErrNoData = errors.New("no data extracted from the PDF")
)

// Deps are the collaborators of a run.
type Deps struct {
	Client *http.Client
	Opener pdftext.Opener

	// Stdout receives serialized data when no output file is configured.
	Stdout io.Writer

	// Diag receives verbose page dumps.
	Diag io.Writer

	// Preflight validates the downloaded bytes. A failure is logged and
	// extraction proceeds; nil skips validation.
	Preflight func([]byte) (int, error)
}

// Run executes one extraction. It returns ErrFetch or ErrNoData, or nil.
// Serialization failures are logged but do not fail the run.
func Run(ctx context.Context, cfg types.Config, deps Deps, log *zap.SugaredLogger) error {
	data, err := acquire.Fetch(ctx, deps.Client, cfg.URL, cfg.HTTPConfig, log)
	if err != nil {
		log.Error("Failed to download PDF. Exiting.")
		return ErrFetch
	}

	entries := Process(data, cfg, deps, log)
	if len(entries) == 0 {
		log.Error("No data extracted from the PDF.")
		return ErrNoData
	}

	if err := output(entries, cfg, deps.Stdout); err != nil {
		log.Errorf("Error saving data: %v", err)
		return nil
	}
	if cfg.Output != "" {
		log.Infof("Data saved to %s", cfg.Output)
	}
	return nil
}

// Process turns document bytes into region entries. Every failure is
// logged and yields an empty result.
func Process(data []byte, cfg types.Config, deps Deps, log *zap.SugaredLogger) []types.RegionEntry {
	if deps.Preflight != nil {
		if n, err := deps.Preflight(data); err != nil {
			log.Warnf("PDF validation failed, extracting anyway: %v", err)
		} else {
			log.Debugw("PDF validated", "pages", n)
		}
	}

	opened, err := deps.Opener.Open(data)
	if err != nil {
		log.Errorf("Error extracting IP probes: %v", types.Fail(types.FailureExtract, err))
		return nil
	}
	defer opened.Close()
	doc := pdftext.Cached(opened)

	res := locate.New(cfg.Locate).Locate(doc, log)
	if res.Fallback {
		log.Warnf("No table pages found. Trying original pages %s...", cfg.Locate.Fallback)
	} else {
		log.Infof("Found potential table pages: %v", res.Pages)
	}

	if cfg.Verbose && deps.Diag != nil {
		pages := res.Pages
		if res.Fallback {
			// Report the configured range, including pages past the end.
			pages = cfg.Locate.Fallback.Pages()
		}
		if err := pdftext.Dump(deps.Diag, doc, pages); err != nil {
			log.Warnf("Error printing PDF content: %v", err)
		}
	}

	entries, err := extract.Extract(doc, res.Pages, log)
	if err != nil {
		return nil
	}
	return entries
}

func output(entries []types.RegionEntry, cfg types.Config, stdout io.Writer) error {
	if cfg.Output != "" {
		return export.WriteFile(cfg.Output, entries, cfg.Format)
	}
	return export.Write(stdout, entries, cfg.Format)
}
