// Package barcode decodes and classifies the two stacked EAN-13 symbols
// that make up a printed book JAN code.
package barcode

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/oned"
)

// Payload is one decoded linear barcode symbol from a page.
type Payload struct {
	Value     string
	Symbology string
}

// Decoder finds all EAN-13 barcodes in a page image.
type Decoder struct {
	reader *multi.GenericMultipleBarcodeReader
	hints  map[gozxing.DecodeHintType]interface{}
}

// NewDecoder creates a Decoder restricted to the EAN-13 symbology.
func NewDecoder() *Decoder {
	return &Decoder{
		reader: multi.NewGenericMultipleBarcodeReader(oned.NewEAN13Reader()),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
	}
}

// Decode returns the raw payloads of all EAN-13 symbols found in img, in
// decode order. A page without any decodable symbol yields an empty slice
// and no error; payload count validation is the classifier's job.
func (d *Decoder) Decode(img image.Image) ([]Payload, error) {
	// Grayscale improves binarization of scanned color covers.
	gray := imaging.Grayscale(img)

	bmp, err := gozxing.NewBinaryBitmapFromImage(gray)
	if err != nil {
		return nil, fmt.Errorf("failed to binarize page image: %w", err)
	}

	results, err := d.reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		var notFound gozxing.NotFoundException
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("barcode decode failed: %w", err)
	}

	payloads := make([]Payload, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, Payload{
			Value:     result.GetText(),
			Symbology: result.GetBarcodeFormat().String(),
		})
	}
	return payloads, nil
}
