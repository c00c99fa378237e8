// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes region entries as JSON, YAML, or CSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/probe-ips/pkg/types"
)

// CSVHeader is the first line of CSV output.
const CSVHeader = "Region,Type,IP Address"

// Write renders entries to w in the given format.
func Write(w io.Writer, entries []types.RegionEntry, format types.Format) error {
	if entries == nil {
		entries = []types.RegionEntry{}
	}
	var err error
	switch format {
	case types.FormatJSON:
		err = writeJSON(w, entries)
	case types.FormatYAML:
		err = writeYAML(w, entries)
	case types.FormatCSV:
		err = writeCSV(w, entries)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	return types.Fail(types.FailureSerialize, err)
}

// WriteFile renders entries to path, truncating any existing file.
func WriteFile(path string, entries []types.RegionEntry, format types.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return types.Fail(types.FailureSerialize, fmt.Errorf("creating %s: %w", path, err))
	}
	writeErr := Write(f, entries, format)
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return types.Fail(types.FailureSerialize, fmt.Errorf("closing %s: %w", path, closeErr))
	}
	return nil
}

func writeJSON(w io.Writer, entries []types.RegionEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, entries []types.RegionEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return nil
}

// writeCSV quotes every region name, which encoding/csv cannot be told to do.
func writeCSV(w io.Writer, entries []types.RegionEntry) error {
	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, r := range types.Flatten(entries) {
		fmt.Fprintf(&b, "\"%s\",%s,%s\n", strings.ReplaceAll(r.Region, `"`, `""`), r.Type, r.Address)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
