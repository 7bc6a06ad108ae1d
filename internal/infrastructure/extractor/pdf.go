package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates per-page text. A readable PDF with almost no text
// is flagged as likely scanned; OCR is deliberately not attempted here, the
// caller is told to resubmit the document as an image instead.
func extractPDF(data []byte) (string, []string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", []string{fmt.Sprintf("pdf unreadable, file may be corrupted or encrypted: %v", err)}, nil
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text := builder.String()
	if len(strings.TrimSpace(text)) < scannedTextThreshold {
		return ScannedPDFPlaceholder, []string{"pdf has little extractable text, likely a scanned document; resubmit as image for OCR"}, nil
	}
	return text, nil, nil
}
