// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftexttest provides in-memory documents for tests of packages
// that consume pdftext.Document.
package pdftexttest

import (
	"fmt"

	"github.com/pdiddy/probe-ips/internal/pdftext"
)

// Document serves fixed page text. Errs injects a failure for a page and
// Calls counts PageText calls per page.
type Document struct {
	Pages  []string
	Errs   map[int]error
	Calls  map[int]int
	Closed bool
}

// New returns a Document whose page n has text pages[n-1].
func New(pages ...string) *Document {
	return &Document{Pages: pages, Errs: map[int]error{}, Calls: map[int]int{}}
}

func (d *Document) NumPages() int { return len(d.Pages) }

func (d *Document) PageText(n int) (string, error) {
	d.Calls[n]++
	if n < 1 || n > len(d.Pages) {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, len(d.Pages))
	}
	if err := d.Errs[n]; err != nil {
		return "", err
	}
	return d.Pages[n-1], nil
}

func (d *Document) Close() error {
	d.Closed = true
	return nil
}

// Opener returns an opener that ignores its input and yields doc.
func Opener(doc *Document) pdftext.Opener {
	return pdftext.OpenerFunc(func([]byte) (pdftext.Document, error) {
		return doc, nil
	})
}

// FailingOpener returns an opener that always fails with err.
func FailingOpener(err error) pdftext.Opener {
	return pdftext.OpenerFunc(func([]byte) (pdftext.Document, error) {
		return nil, err
	})
}
