// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned by Preflight for data without a PDF header.
var ErrNotPDF = errors.New("not a PDF document")

var disableConfigDir sync.Once

// Preflight checks that data is a readable PDF and returns its page count.
// Encrypted documents that need a password and structurally broken files
// fail here, before any text backend sees them.
func Preflight(data []byte) (int, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return 0, ErrNotPDF
	}

	// pdfcpu otherwise writes its defaults under the user config dir.
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("validating PDF: %w", err)
	}
	return n, nil
}
