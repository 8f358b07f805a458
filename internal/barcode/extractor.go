package barcode

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"bookjan/internal/pagerange"
)

// PageRenderer rasterizes single pages of a PDF document.
// Implemented by pdfpage.Renderer; abstracted so extractor tests can feed
// synthetic page images.
type PageRenderer interface {
	PageCount(ctx context.Context, pdfPath string) (int, error)
	RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error)
}

// Extractor scans a window of PDF pages for a complete book JAN code.
type Extractor struct {
	renderer PageRenderer
	decoder  *Decoder
	window   int
	anchor   pagerange.Anchor
}

// NewExtractor creates an Extractor scanning the given window of pages.
func NewExtractor(renderer PageRenderer, window int, anchor pagerange.Anchor) *Extractor {
	return &Extractor{
		renderer: renderer,
		decoder:  NewDecoder(),
		window:   window,
		anchor:   anchor,
	}
}

// Extract scans the configured page window of pdfPath in ascending page
// order and stops at the first page yielding a complete book JAN code.
// Pages that fail to render or decode are skipped with a warning. When
// every page in the window is exhausted the file is returned as an
// Unresolved result, not an error.
func (e *Extractor) Extract(ctx context.Context, pdfPath string) (Result, error) {
	pageCount, err := e.renderer.PageCount(ctx, pdfPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to determine page count: %w", err)
	}

	window, err := pagerange.Select(pageCount, e.window, e.anchor)
	if err != nil {
		return Result{}, err
	}

	for _, page := range window.Pages() {
		img, err := e.renderer.RenderPage(ctx, pdfPath, page)
		if err != nil {
			slog.Warn("Failed to render page, skipping",
				"file", filepath.Base(pdfPath), "page", page, "error", err)
			continue
		}

		payloads, err := e.decoder.Decode(img)
		if err != nil {
			slog.Warn("Failed to decode barcodes, skipping page",
				"file", filepath.Base(pdfPath), "page", page, "error", err)
			continue
		}

		if code, ok := Classify(payloads); ok {
			slog.Debug("Found book JAN code",
				"file", filepath.Base(pdfPath), "page", page, "isbn", code.ISBN)
			return Resolved(pdfPath, code), nil
		}
	}

	return Unresolved(pdfPath), nil
}
