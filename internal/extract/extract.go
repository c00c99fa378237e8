// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads the "IP Probes by Region Available" table out of
// page text. Lines are classified one at a time as a region name, a row of
// probe addresses, or boilerplate, and folded into per-region entries.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/probe-ips/internal/pdftext"
	"github.com/pdiddy/probe-ips/pkg/types"
)

// AnchorPhrase marks the start of the table. Lines are only considered on
// the page where it first appears and on every later page.
const AnchorPhrase = "ip probes by region"

// stoplist holds lowercase substrings of headers, legends, and footers.
// A line containing any of them is never data and never a region name.
var stoplist = []string{
	AnchorPhrase,
	"available",
	"2019",
	"ipv4",
	"ipv6",
	"region",
	"table",
	"page",
	"ultradns",
	"confidential",
}

var (
	ipv4Pattern = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)

	// Only the vendor's probe prefix; this is not a general IPv6 matcher.
	ipv6Pattern = regexp.MustCompile(`2610:a1:[0-9a-fA-F]{1,4}:128::[0-9a-fA-F]{1,3}`)
)

// LineKind is the classification of a single text line.
type LineKind int

const (
	LineSkip LineKind = iota
	LineRegion
	LineAddresses
)

func (k LineKind) String() string {
	switch k {
	case LineRegion:
		return "region"
	case LineAddresses:
		return "addresses"
	default:
		return "skip"
	}
}

// Line is a classified line. IPv4 and IPv6 are set for LineAddresses.
type Line struct {
	Kind LineKind
	Text string
	IPv4 []string
	IPv6 []string
}

// IsStopped reports whether line contains a stoplist entry, ignoring case.
func IsStopped(line string) bool {
	lower := strings.ToLower(line)
	for _, s := range stoplist {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// FindIPv4 returns every dotted-quad token in line with octets 0-255.
func FindIPv4(line string) []string {
	return ipv4Pattern.FindAllString(line, -1)
}

// FindIPv6 returns every vendor-format probe address in line.
func FindIPv6(line string) []string {
	return ipv6Pattern.FindAllString(line, -1)
}

// ClassifyLine trims raw and decides what it is. Blank and stoplisted lines
// are skipped; lines with address tokens are data; other lines longer than
// one character that do not start with a digit are region names.
func ClassifyLine(raw string) Line {
	text := strings.TrimSpace(raw)
	if text == "" || IsStopped(text) {
		return Line{Kind: LineSkip, Text: text}
	}

	v4, v6 := FindIPv4(text), FindIPv6(text)
	if len(v4) > 0 || len(v6) > 0 {
		return Line{Kind: LineAddresses, Text: text, IPv4: v4, IPv6: v6}
	}

	first, _ := utf8.DecodeRuneInString(text)
	if utf8.RuneCountInString(text) > 1 && !unicode.IsDigit(first) {
		return Line{Kind: LineRegion, Text: text}
	}
	return Line{Kind: LineSkip, Text: text}
}

// NormalizeRegion rewrites en and em dashes to a plain hyphen and leaves
// everything else untouched.
func NormalizeRegion(name string) string {
	return strings.NewReplacer("\u2013", "-", "\u2014", "-").Replace(name)
}

// accumulator carries the fold state across lines and pages.
type accumulator struct {
	current string
	entries []types.RegionEntry
	index   map[string]int
	seen    []map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

// add folds one classified line into the accumulator. Address lines seen
// before any region name are dropped.
func (a *accumulator) add(l Line) {
	switch l.Kind {
	case LineRegion:
		a.current = l.Text
	case LineAddresses:
		if a.current == "" {
			return
		}
		a.merge(NormalizeRegion(a.current), l.IPv4, l.IPv6)
	}
}

func (a *accumulator) merge(region string, v4, v6 []string) {
	i, ok := a.index[region]
	if !ok {
		i = len(a.entries)
		a.index[region] = i
		a.entries = append(a.entries, types.RegionEntry{Region: region, IPv4: []string{}, IPv6: []string{}})
		a.seen = append(a.seen, make(map[string]bool))
	}
	e := &a.entries[i]
	seen := a.seen[i]
	for _, ip := range v4 {
		if !seen[ip] {
			seen[ip] = true
			e.IPv4 = append(e.IPv4, ip)
		}
	}
	for _, ip := range v6 {
		if !seen[ip] {
			seen[ip] = true
			e.IPv6 = append(e.IPv6, ip)
		}
	}
}

// Extract walks pages in order and returns the region entries found after
// the anchor phrase. Pages outside the document are skipped with a warning.
// Any page-text error aborts the whole run: the result is empty and the
// error is an extract StageError.
func Extract(doc pdftext.Document, pages []int, log *zap.SugaredLogger) ([]types.RegionEntry, error) {
	acc := newAccumulator()
	inTable := false

	for _, p := range pages {
		if p < 1 || p > doc.NumPages() {
			log.Warnf("Warning: Page %d does not exist in the PDF", p)
			continue
		}

		text, err := doc.PageText(p)
		if err != nil {
			err = types.Fail(types.FailureExtract, fmt.Errorf("page %d: %w", p, err))
			log.Errorf("Error extracting IP probes: %v", err)
			return nil, err
		}

		if strings.Contains(strings.ToLower(text), AnchorPhrase) {
			inTable = true
			log.Infof("Found IP Probes by Region table on page %d", p)
		}
		if !inTable {
			continue
		}

		for _, raw := range strings.Split(text, "\n") {
			l := ClassifyLine(raw)
			log.Debugw("classified line", "page", p, "kind", l.Kind, "text", l.Text)
			acc.add(l)
		}
	}
	return acc.entries, nil
}
