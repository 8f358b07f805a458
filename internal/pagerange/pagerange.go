// Package pagerange computes the inclusive page window scanned for a
// book JAN code.
package pagerange

import "fmt"

// Anchor selects which end of the document the scan window is counted from.
type Anchor string

const (
	// AnchorFirst counts the window from the first page of the document.
	AnchorFirst Anchor = "first"
	// AnchorEnd counts the window from the last page of the document.
	// Book JAN codes are printed on the back cover, so this is the default.
	AnchorEnd Anchor = "end"
)

// ParseAnchor validates a user-supplied anchor string.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case AnchorFirst:
		return AnchorFirst, nil
	case AnchorEnd:
		return AnchorEnd, nil
	default:
		return "", fmt.Errorf("invalid anchor %q: must be %q or %q", s, AnchorFirst, AnchorEnd)
	}
}

// Range is an inclusive, 1-based page range within a document.
type Range struct {
	First int
	Last  int
}

// Pages returns the page numbers in the range in ascending order.
// Scanning always proceeds from First to Last regardless of anchor.
func (r Range) Pages() []int {
	pages := make([]int, 0, r.Last-r.First+1)
	for p := r.First; p <= r.Last; p++ {
		pages = append(pages, p)
	}
	return pages
}

// RangeError means the requested window cannot fit in the document.
type RangeError struct {
	PageCount int
	Window    int
	Anchor    Anchor
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("scan window of %d pages exceeds document length %d (anchor %q)",
		e.Window, e.PageCount, e.Anchor)
}

// Select computes the scan window for a document with pageCount pages.
// The window must fit entirely inside the document; an oversized window
// fails with *RangeError rather than being silently truncated.
func Select(pageCount, window int, anchor Anchor) (Range, error) {
	if pageCount < 1 {
		return Range{}, fmt.Errorf("document has no pages (page count %d)", pageCount)
	}
	if window < 1 {
		return Range{}, fmt.Errorf("scan window must be at least 1 page, got %d", window)
	}
	if window > pageCount {
		return Range{}, &RangeError{PageCount: pageCount, Window: window, Anchor: anchor}
	}

	switch anchor {
	case AnchorEnd:
		return Range{First: pageCount - window + 1, Last: pageCount}, nil
	case AnchorFirst:
		return Range{First: 1, Last: window}, nil
	default:
		return Range{}, fmt.Errorf("invalid anchor %q", anchor)
	}
}
