// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// PageRange is an inclusive, 1-indexed span of pages.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// ParsePageRange parses "202-203" or a single page such as "7".
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	first, rest, isRange := strings.Cut(s, "-")
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return PageRange{}, fmt.Errorf("invalid page range %q: %w", s, err)
	}
	end := start
	if isRange {
		end, err = strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return PageRange{}, fmt.Errorf("invalid page range %q: %w", s, err)
		}
	}
	if start < 1 || end < start {
		return PageRange{}, fmt.Errorf("invalid page range %q", s)
	}
	return PageRange{Start: start, End: end}, nil
}

// String formats the range the way ParsePageRange reads it.
func (r PageRange) String() string {
	if r.Start == r.End {
		return strconv.Itoa(r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Clamp intersects the range with pages 1..n. The result may be empty.
func (r PageRange) Clamp(n int) PageRange {
	if r.Start < 1 {
		r.Start = 1
	}
	if r.End > n {
		r.End = n
	}
	return r
}

// Empty reports whether the range holds no pages.
func (r PageRange) Empty() bool {
	return r.End < r.Start
}

// Pages lists the page numbers in the range in ascending order.
func (r PageRange) Pages() []int {
	if r.Empty() {
		return nil
	}
	pages := make([]int, 0, r.End-r.Start+1)
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}
