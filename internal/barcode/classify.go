package barcode

import "strings"

// A book JAN code is a pair of stacked EAN-13 barcodes: the upper symbol
// encodes the ISBN (prefix 978 or 979), the lower one the classification
// and cover price code (prefix 192).
const (
	isbnPrefixOld = "978"
	isbnPrefixNew = "979"
	detailPrefix  = "192"
)

// BookCode is a complete book JAN code recovered from one page.
type BookCode struct {
	ISBN       string
	DetailCode string
}

// Result is the outcome of scanning one file: a complete BookCode on
// success, or just the original file path so the caller can queue the
// file for manual ISBN entry. A missing code is not an error.
type Result struct {
	Code *BookCode
	Path string
}

// Found reports whether a complete book JAN code was recovered.
func (r Result) Found() bool {
	return r.Code != nil
}

// Resolved builds a successful Result for the given file.
func Resolved(path string, code BookCode) Result {
	return Result{Code: &code, Path: path}
}

// Unresolved builds a Result marking the file for manual entry.
func Unresolved(path string) Result {
	return Result{Path: path}
}

// Classify sorts the decoded payloads of one page into the ISBN and
// detail-code slots. The page is accepted only when it carries exactly
// two payloads and both slots end up filled; payloads with an
// unrecognized prefix are ignored without invalidating the page.
func Classify(payloads []Payload) (BookCode, bool) {
	if len(payloads) != 2 {
		return BookCode{}, false
	}

	var code BookCode
	for _, p := range payloads {
		value := strings.TrimSpace(p.Value)
		switch {
		case strings.HasPrefix(value, isbnPrefixOld), strings.HasPrefix(value, isbnPrefixNew):
			code.ISBN = value
		case strings.HasPrefix(value, detailPrefix):
			code.DetailCode = value
		}
	}

	if code.ISBN == "" || code.DetailCode == "" {
		return BookCode{}, false
	}
	return code, true
}
