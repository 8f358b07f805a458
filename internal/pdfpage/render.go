// Package pdfpage renders single PDF pages to raster images using the
// poppler and ghostscript command line tools.
//
// Page numbers are 1-based throughout, matching ghostscript's
// -dFirstPage/-dLastPage convention.
package pdfpage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"
)

// DefaultDPI is the render resolution used when none is configured.
// Higher values improve small-barcode legibility at a proportional
// time cost.
const DefaultDPI = 200

// ErrInvalidDocument means the input file could not be read as a PDF.
var ErrInvalidDocument = errors.New("not a readable PDF document")

// Renderer rasterizes individual PDF pages.
type Renderer struct {
	executor CommandExecutor
	dpi      int
}

// NewRenderer creates a Renderer rendering at the given DPI.
// Non-positive dpi falls back to DefaultDPI.
func NewRenderer(dpi int) *Renderer {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Renderer{
		executor: defaultExecutor{},
		dpi:      dpi,
	}
}

// PageCount returns the number of pages in the PDF using `pdfinfo`.
func (r *Renderer) PageCount(ctx context.Context, pdfPath string) (int, error) {
	if pdfPath == "" {
		return 0, errors.New("pdf path cannot be empty")
	}

	output, err := r.executor.Run(ctx, "pdfinfo", pdfPath)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo failed for %s: %w: %w", pdfPath, ErrInvalidDocument, err)
	}

	return parsePdfInfoOutput(string(output))
}

// parsePdfInfoOutput scans pdfinfo text output for the page count line.
func parsePdfInfoOutput(output string) (int, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		fields := strings.Fields(line) // e.g. ["Pages:", "123"]
		if len(fields) >= 2 {
			if count, convErr := strconv.Atoi(fields[1]); convErr == nil {
				return count, nil
			}
		}
	}

	return 0, fmt.Errorf("could not parse 'Pages:' line from pdfinfo output: %w", ErrInvalidDocument)
}

// RenderPage rasterizes one page (1-based) to an in-memory image.
// The page is rendered by ghostscript into a scratch PNG file which is
// removed before returning, on every exit path.
func (r *Renderer) RenderPage(ctx context.Context, pdfPath string, page int) (image.Image, error) {
	if page < 1 {
		return nil, fmt.Errorf("page number must be positive, got %d", page)
	}
	if pdfPath == "" {
		return nil, errors.New("pdf path cannot be empty")
	}

	scratch, err := os.CreateTemp("", "bookjan-page-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch image file: %w", err)
	}
	scratchPath := scratch.Name()
	if err := scratch.Close(); err != nil {
		return nil, fmt.Errorf("failed to close scratch image file: %w", err)
	}
	defer func() { _ = os.Remove(scratchPath) }()

	args := buildGhostscriptArgs(r.dpi, page, scratchPath, pdfPath)
	output, err := r.executor.RunCombined(ctx, "ghostscript", args...)
	if err != nil {
		return nil, fmt.Errorf("ghostscript failed for page %d of %s: %w. Output: %s",
			page, pdfPath, err, string(output))
	}

	return decodeScratchPNG(scratchPath)
}

func decodeScratchPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered page image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page image: %w", err)
	}
	return img, nil
}

// buildGhostscriptArgs constructs the ghostscript invocation for a
// single-page PNG render.
func buildGhostscriptArgs(dpi, page int, outPath, pdfPath string) []string {
	return []string{
		"-q", "-dNOPAUSE", "-dBATCH",
		"-sDEVICE=png16m",
		fmt.Sprintf("-r%d", dpi),
		fmt.Sprintf("-dFirstPage=%d", page),
		fmt.Sprintf("-dLastPage=%d", page),
		"-o", outPath,
		"-dTextAlphaBits=4",
		"-dGraphicsAlphaBits=4",
		pdfPath,
	}
}
