package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/medscrub/medscrub/internal/core/domain"
)

type ocrFake struct {
	available bool
	text      string
	err       error
}

func (f *ocrFake) Available(context.Context) bool { return f.available }

func (f *ocrFake) Recognize(context.Context, []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestExtractUnknownFormatReportsDiagnostic(t *testing.T) {
	d := NewDispatcher(nil)

	text, diags, err := d.Extract(context.Background(), domain.Format("xyz"), []byte("data"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
	if len(diags) != 1 || diags[0] != "unsupported file type: xyz" {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractImageWithoutOCRWritesPlaceholder(t *testing.T) {
	d := NewDispatcher(nil)

	text, diags, err := d.Extract(context.Background(), domain.FormatImage, []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != OCRUnavailablePlaceholder {
		t.Fatalf("expected placeholder, got %q", text)
	}
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic about missing OCR")
	}
}

func TestExtractImageOCRSuccess(t *testing.T) {
	d := NewDispatcher(&ocrFake{available: true, text: "recognized report text"})

	text, diags, err := d.Extract(context.Background(), domain.FormatImage, []byte("img"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "recognized report text" {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractImageOCREmptyOutput(t *testing.T) {
	d := NewDispatcher(&ocrFake{available: true, text: "  \n "})

	text, diags, err := d.Extract(context.Background(), domain.FormatImage, []byte("img"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != OCRNoTextPlaceholder {
		t.Fatalf("expected no-text placeholder, got %q", text)
	}
	if len(diags) != 1 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractImageOCRFailureBecomesDiagnostic(t *testing.T) {
	d := NewDispatcher(&ocrFake{available: true, err: errors.New("binary crashed")})

	text, diags, err := d.Extract(context.Background(), domain.FormatImage, []byte("img"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "OCR Error") {
		t.Fatalf("expected error placeholder, got %q", text)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "binary crashed") {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractPlainTextDecodesWindows1252(t *testing.T) {
	d := NewDispatcher(nil)

	text, diags, err := d.Extract(context.Background(), domain.FormatPlainText, []byte("caf\xe9 report"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "café report" {
		t.Fatalf("unexpected decode: %q", text)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractPlainTextDecodesUTF16LE(t *testing.T) {
	d := NewDispatcher(nil)

	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	text, _, err := d.Extract(context.Background(), domain.FormatPlainText, data)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hi" {
		t.Fatalf("unexpected decode: %q", text)
	}
}

func TestExtractPlainTextNormalizesLineEndings(t *testing.T) {
	d := NewDispatcher(nil)

	text, _, err := d.Extract(context.Background(), domain.FormatPlainText, []byte("line one  \r\nline two\r"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "line one\nline two" {
		t.Fatalf("unexpected normalization: %q", text)
	}
}

func TestExtractWordReadsParagraphsThenTables(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Test</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Result</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	d := NewDispatcher(nil)
	text, diags, err := d.Extract(context.Background(), domain.FormatWord, buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	want := "First paragraph\nSecond paragraph\nTest | Result"
	if text != want {
		t.Fatalf("unexpected text:\nwant %q\ngot  %q", want, text)
	}
}

func TestExtractWordRejectsNonArchive(t *testing.T) {
	d := NewDispatcher(nil)

	text, diags, err := d.Extract(context.Background(), domain.FormatWord, []byte("not a zip"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "not a valid docx archive") {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractPDFGarbageReportsDiagnostic(t *testing.T) {
	d := NewDispatcher(nil)

	text, diags, err := d.Extract(context.Background(), domain.FormatPDF, []byte("definitely not a pdf"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "pdf unreadable") {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestExtractSpreadsheetJoinsCells(t *testing.T) {
	book := excelize.NewFile()
	if err := book.SetCellValue("Sheet1", "A1", "Test"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := book.SetCellValue("Sheet1", "B1", "Result"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := book.SetCellValue("Sheet1", "A2", "Hemoglobin"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	d := NewDispatcher(nil)
	text, diags, err := d.Extract(context.Background(), domain.FormatSpreadsheet, buf.Bytes())
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := "Test | Result\nHemoglobin"
	if text != want {
		t.Fatalf("unexpected text:\nwant %q\ngot  %q", want, text)
	}
}
