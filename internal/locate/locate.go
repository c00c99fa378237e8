// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locate finds the pages of a document that carry the probe table.
package locate

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/probe-ips/internal/pdftext"
	"github.com/pdiddy/probe-ips/pkg/types"
)

// Locator searches a page span for each phrase in priority order.
type Locator struct {
	// Phrases are matched case-insensitively as substrings.
	Phrases []string

	// Scan bounds the search; it is clamped to the document length.
	Scan types.PageRange

	// Fallback is returned, clamped, when no phrase matches.
	Fallback types.PageRange
}

// New builds a Locator from configuration.
func New(cfg types.LocateConfig) Locator {
	return Locator{Phrases: cfg.Phrases, Scan: cfg.Scan, Fallback: cfg.Fallback}
}

// Result holds the candidate pages and how they were chosen.
type Result struct {
	Pages []int

	// Phrase is the phrase that matched; empty when Fallback is set.
	Phrase string

	Fallback bool
}

// Locate returns the pages containing the first phrase found on any page.
// A page-text error while scanning for one phrase is logged and that phrase
// counts as not found. When nothing matches it returns the fallback range.
func (l Locator) Locate(doc pdftext.Document, log *zap.SugaredLogger) Result {
	for _, phrase := range l.Phrases {
		pages, err := l.FindPages(doc, phrase, log)
		if err != nil {
			log.Warnw("Error searching PDF", "phrase", phrase, "error", err)
			continue
		}
		if len(pages) > 0 {
			return Result{Pages: pages, Phrase: phrase}
		}
	}
	return Result{Pages: l.Fallback.Clamp(doc.NumPages()).Pages(), Fallback: true}
}

// FindPages returns the 1-indexed pages within the scan span whose text
// contains phrase, ignoring case. Per-page errors are combined and returned
// with no pages.
func (l Locator) FindPages(doc pdftext.Document, phrase string, log *zap.SugaredLogger) ([]int, error) {
	needle := strings.ToLower(phrase)
	var (
		found []int
		errs  error
	)
	for _, p := range l.Scan.Clamp(doc.NumPages()).Pages() {
		text, err := doc.PageText(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("page %d: %w", p, err))
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			found = append(found, p)
			log.Infof("Found '%s' on page %d", phrase, p)
		}
	}
	if errs != nil {
		return nil, types.Fail(types.FailureLocate, errs)
	}
	return found, nil
}
