// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build tabula

package pdftext

import (
	"fmt"
	"os"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
)

// TabulaOpener extracts text with github.com/tsawler/tabula. Tabula reads
// from a file, so the bytes are spooled to a temporary file that lives until
// the Document is closed. Page lines are rebuilt from tabula's positioned
// fragments rather than its reading-order text, which merges table cells.
//
// Tabula links gosseract for OCR, so this backend is only built with
// -tags tabula and needs cgo with the tesseract and leptonica headers.
type TabulaOpener struct{}

func init() { backends["tabula"] = TabulaOpener{} }

// Open writes data to a temp file and opens it with tabula's reader.
func (TabulaOpener) Open(data []byte) (Document, error) {
	tmp, err := os.CreateTemp("", "probe-ips-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	r, err := reader.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	n, err := r.PageCount()
	if err != nil {
		r.Close()
		os.Remove(path)
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	return &tabulaDocument{r: r, path: path, pages: n}, nil
}

type tabulaDocument struct {
	r     *reader.Reader
	path  string
	pages int
}

func (d *tabulaDocument) NumPages() int { return d.pages }

func (d *tabulaDocument) PageText(n int) (string, error) {
	if n < 1 || n > d.pages {
		return "", fmt.Errorf("page %d out of range (1-%d)", n, d.pages)
	}
	// FromReader does not own the reader, so Fragments leaves it open.
	frags, _, err := tabula.FromReader(d.r).Pages(n).Fragments()
	if err != nil {
		return "", fmt.Errorf("extracting page %d: %w", n, err)
	}
	runs := make([]run, 0, len(frags))
	for _, f := range frags {
		runs = append(runs, run{X: f.X, Y: f.Y, W: f.Width, Size: f.FontSize, S: f.Text})
	}
	return layoutText(runs), nil
}

func (d *tabulaDocument) Close() error {
	err := d.r.Close()
	if rmErr := os.Remove(d.path); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
