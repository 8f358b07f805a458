package barcode

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"bookjan/internal/pagerange"
)

// fakeRenderer serves synthetic page images keyed by page number.
type fakeRenderer struct {
	pageCount    int
	pageCountErr error
	pages        map[int]image.Image
	renderErrs   map[int]error
	rendered     []int
}

func (f *fakeRenderer) PageCount(_ context.Context, _ string) (int, error) {
	return f.pageCount, f.pageCountErr
}

func (f *fakeRenderer) RenderPage(_ context.Context, _ string, page int) (image.Image, error) {
	f.rendered = append(f.rendered, page)
	if err := f.renderErrs[page]; err != nil {
		return nil, err
	}
	if img, ok := f.pages[page]; ok {
		return img, nil
	}
	return blankPage(400, 300), nil
}

func janCodePage(t *testing.T) image.Image {
	t.Helper()
	return stackVertically(
		encodeEAN13(t, "9784063600568", 400, 120),
		encodeEAN13(t, "1920000123457", 400, 120),
	)
}

func TestExtractStopsAtFirstCodePage(t *testing.T) {
	// Ten pages, valid book JAN code on page 8 only, scanned with a
	// three page window anchored at the end (pages 8-10).
	renderer := &fakeRenderer{
		pageCount: 10,
		pages:     map[int]image.Image{8: janCodePage(t)},
	}

	extractor := NewExtractor(renderer, 3, pagerange.AnchorEnd)
	result, err := extractor.Extract(context.Background(), "comic.pdf")
	require.NoError(t, err)
	require.True(t, result.Found())
	require.Equal(t, "9784063600568", result.Code.ISBN)
	require.Equal(t, "1920000123457", result.Code.DetailCode)
	require.Equal(t, "comic.pdf", result.Path)

	// Scanning stops at the first page with a complete code.
	require.Equal(t, []int{8}, renderer.rendered)
}

func TestExtractExhaustsWindowWithoutCode(t *testing.T) {
	renderer := &fakeRenderer{pageCount: 10}

	extractor := NewExtractor(renderer, 3, pagerange.AnchorEnd)
	result, err := extractor.Extract(context.Background(), "comic.pdf")
	require.NoError(t, err)
	require.False(t, result.Found())
	require.Equal(t, "comic.pdf", result.Path)
	require.Equal(t, []int{8, 9, 10}, renderer.rendered)
}

func TestExtractSkipsFailedPages(t *testing.T) {
	renderer := &fakeRenderer{
		pageCount:  10,
		pages:      map[int]image.Image{9: janCodePage(t)},
		renderErrs: map[int]error{8: errors.New("render blew up")},
	}

	extractor := NewExtractor(renderer, 3, pagerange.AnchorEnd)
	result, err := extractor.Extract(context.Background(), "comic.pdf")
	require.NoError(t, err)
	require.True(t, result.Found())
	require.Equal(t, []int{8, 9}, renderer.rendered)
}

func TestExtractWindowLargerThanDocument(t *testing.T) {
	renderer := &fakeRenderer{pageCount: 2}

	extractor := NewExtractor(renderer, 5, pagerange.AnchorEnd)
	_, err := extractor.Extract(context.Background(), "thin.pdf")
	require.Error(t, err)

	var rangeErr *pagerange.RangeError
	require.True(t, errors.As(err, &rangeErr))
}

func TestExtractPageCountFailure(t *testing.T) {
	renderer := &fakeRenderer{pageCountErr: errors.New("pdfinfo failed")}

	extractor := NewExtractor(renderer, 3, pagerange.AnchorEnd)
	_, err := extractor.Extract(context.Background(), "broken.pdf")
	require.Error(t, err)
}
