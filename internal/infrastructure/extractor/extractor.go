// Package extractor turns source bytes into raw text for each declared
// document format. Degradations (missing OCR, scanned PDFs, undecodable
// text, unknown formats) surface as diagnostics and placeholder or empty
// text, never as errors: the pipeline must keep moving.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/medscrub/medscrub/internal/core/domain"
	"github.com/medscrub/medscrub/internal/core/ports"
)

const (
	// OCRUnavailablePlaceholder is written as raw text when the image path
	// is requested without a usable OCR engine.
	OCRUnavailablePlaceholder = "[OCR not available - Please install Tesseract]"
	// OCRNoTextPlaceholder is written when OCR ran but found nothing.
	OCRNoTextPlaceholder = "[OCR Warning: No text detected in image]"
	// ScannedPDFPlaceholder is written when a PDF yields almost no text.
	ScannedPDFPlaceholder = "[PDF Warning: This appears to be a scanned PDF with no extractable text. Please upload it as an image for OCR processing]"

	// scannedTextThreshold is the trimmed-length floor under which a PDF is
	// treated as likely scanned.
	scannedTextThreshold = 50
)

type Dispatcher struct {
	ocr ports.OCREngine
}

func NewDispatcher(ocr ports.OCREngine) *Dispatcher {
	return &Dispatcher{ocr: ocr}
}

func (d *Dispatcher) Extract(ctx context.Context, format domain.Format, data []byte) (string, []string, error) {
	switch format {
	case domain.FormatImage:
		return d.extractImage(ctx, data)
	case domain.FormatPDF:
		return extractPDF(data)
	case domain.FormatWord:
		return extractWord(data)
	case domain.FormatPlainText:
		return extractPlainText(data)
	case domain.FormatSpreadsheet:
		return extractSpreadsheet(data)
	default:
		return "", []string{fmt.Sprintf("unsupported file type: %s", format)}, nil
	}
}

func (d *Dispatcher) extractImage(ctx context.Context, data []byte) (string, []string, error) {
	if d.ocr == nil || !d.ocr.Available(ctx) {
		return OCRUnavailablePlaceholder, []string{"OCR not configured"}, nil
	}

	text, err := d.ocr.Recognize(ctx, data)
	if err != nil {
		return fmt.Sprintf("[OCR Error: %v]", err), []string{fmt.Sprintf("ocr failed: %v", err)}, nil
	}
	if strings.TrimSpace(text) == "" {
		return OCRNoTextPlaceholder, []string{"ocr found no text in image"}, nil
	}
	return text, nil, nil
}
