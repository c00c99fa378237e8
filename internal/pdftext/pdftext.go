// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext turns PDF bytes into plain text, one page at a time.
// Different backends (ledongthuc/pdf, and tabula when built with -tags
// tabula) implement Opener; callers only see the Document interface.
package pdftext

import (
	"fmt"
	"io"
	"sort"
)

// Document exposes the plain text of each page of an opened PDF.
type Document interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// PageText returns the text of page n (1-indexed) with lines separated
	// by newlines.
	PageText(n int) (string, error)

	Close() error
}

// Opener parses PDF bytes into a Document.
type Opener interface {
	Open(data []byte) (Document, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(data []byte) (Document, error)

func (f OpenerFunc) Open(data []byte) (Document, error) { return f(data) }

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = "pdf"

// backends holds the registered Openers. Optional backends add themselves
// from init in files guarded by build tags.
var backends = map[string]Opener{
	"pdf": GlyphOpener{},
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Backend returns the Opener registered under name.
func Backend(name string) (Opener, error) {
	if name == "" {
		name = DefaultBackend
	}
	o, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown PDF backend %q (want one of %v)", name, Backends())
	}
	return o, nil
}

// cachedDocument memoizes page text. Errors are not cached.
type cachedDocument struct {
	Document
	pages map[int]string
}

// Cached wraps doc so that each page is extracted at most once.
func Cached(doc Document) Document {
	if c, ok := doc.(*cachedDocument); ok {
		return c
	}
	return &cachedDocument{Document: doc, pages: make(map[int]string)}
}

func (c *cachedDocument) PageText(n int) (string, error) {
	if text, ok := c.pages[n]; ok {
		return text, nil
	}
	text, err := c.Document.PageText(n)
	if err != nil {
		return "", err
	}
	c.pages[n] = text
	return text, nil
}

// Dump writes the raw text of each requested page to w, framed by page
// markers. Pages outside the document are reported and skipped.
func Dump(w io.Writer, doc Document, pages []int) error {
	for _, p := range pages {
		if p < 1 || p > doc.NumPages() {
			fmt.Fprintf(w, "Warning: Page %d does not exist in the PDF\n", p)
			continue
		}
		text, err := doc.PageText(p)
		if err != nil {
			return fmt.Errorf("page %d: %w", p, err)
		}
		fmt.Fprintf(w, "\n--- PAGE %d CONTENT ---\n", p)
		fmt.Fprintln(w, text)
		fmt.Fprintf(w, "--- END OF PAGE %d CONTENT ---\n\n", p)
	}
	return nil
}
