// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"math"
	"sort"
	"strings"
)

// Gaps are measured in multiples of the font size.
const (
	// wordGap separates two runs on a line into distinct words.
	wordGap = 0.2

	// columnGap separates two runs into distinct table cells. Each cell
	// is emitted on its own line.
	columnGap = 1.5

	// baselineTolerance is how far two runs' baselines may differ and
	// still share a line.
	baselineTolerance = 0.5

	// fallbackSize stands in for a missing font size.
	fallbackSize = 10.0
)

// run is a piece of text placed on the page. X and Y are in PDF user space
// (Y grows upward). W may be zero when the font carries no width table.
type run struct {
	X, Y, W, Size float64
	S             string
}

func (r run) size() float64 {
	if r.Size > 0 {
		return r.Size
	}
	return fallbackSize
}

// layoutText rebuilds page text from positioned runs. Runs are grouped into
// lines by baseline, top to bottom, and ordered left to right within a line.
// A column-sized horizontal gap starts a new line so that table cells stand
// alone.
func layoutText(runs []run) string {
	if len(runs) == 0 {
		return ""
	}

	sorted := make([]run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows [][]run
	var rowY float64
	for _, r := range sorted {
		n := len(rows)
		if n > 0 && math.Abs(r.Y-rowY) <= r.size()*baselineTolerance {
			rows[n-1] = append(rows[n-1], r)
			continue
		}
		rows = append(rows, []run{r})
		rowY = r.Y
	}

	var lines []string
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		lines = append(lines, splitCells(row)...)
	}
	return strings.Join(lines, "\n")
}

// splitCells joins the runs of one line, returning one string per cell.
func splitCells(row []run) []string {
	var cells []string
	var b strings.Builder
	flush := func() {
		if cell := strings.TrimSpace(b.String()); cell != "" {
			cells = append(cells, cell)
		}
		b.Reset()
	}

	for i, r := range row {
		if i > 0 {
			prev := row[i-1]
			gap := r.X - (prev.X + prev.W)
			size := math.Max(prev.size(), r.size())
			switch {
			case gap > size*columnGap:
				flush()
			case gap > size*wordGap && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(r.S, " "):
				b.WriteByte(' ')
			}
		}
		b.WriteString(r.S)
	}
	flush()
	return cells
}
