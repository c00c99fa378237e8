// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// GlyphOpener extracts text in memory with github.com/ledongthuc/pdf,
// rebuilding each page's lines from the positioned glyphs of its content
// stream.
type GlyphOpener struct{}

// Open parses data without touching the filesystem.
func (GlyphOpener) Open(data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}
	return &glyphDocument{r: r}, nil
}

type glyphDocument struct {
	r *pdf.Reader
}

func (d *glyphDocument) NumPages() int { return d.r.NumPage() }

// PageText recovers from panics inside the parser, which it raises on
// malformed content streams.
func (d *glyphDocument) PageText(n int) (text string, err error) {
	if n < 1 || n > d.r.NumPage() {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, d.r.NumPage())
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extracting page %d: %v", n, r)
		}
	}()

	page := d.r.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	content := page.Content()
	runs := make([]run, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, run{X: t.X, Y: t.Y, W: t.W, Size: t.FontSize, S: t.S})
	}
	return layoutText(runs), nil
}

func (d *glyphDocument) Close() error { return nil }
