package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type wordDocument struct {
	Body wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
	Tables     []wordTable     `xml:"tbl"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Text string `xml:"t"`
}

type wordTable struct {
	Rows []wordRow `xml:"tr"`
}

type wordRow struct {
	Cells []wordCell `xml:"tc"`
}

type wordCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

// extractWord reads the main document part of a docx archive: every
// non-blank paragraph, then every table row with non-empty cells joined by
// " | ".
func extractWord(data []byte) (string, []string, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", []string{fmt.Sprintf("word document unreadable, not a valid docx archive: %v", err)}, nil
	}

	var documentFile *zip.File
	for _, f := range zipReader.File {
		if f.Name == "word/document.xml" {
			documentFile = f
			break
		}
	}
	if documentFile == nil {
		return "", []string{"word document has no document.xml part"}, nil
	}

	xmlFile, err := documentFile.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer xmlFile.Close()

	xmlData, err := io.ReadAll(xmlFile)
	if err != nil {
		return "", nil, fmt.Errorf("read document.xml: %w", err)
	}

	var doc wordDocument
	if err := xml.Unmarshal(xmlData, &doc); err != nil {
		return "", []string{fmt.Sprintf("word document xml malformed: %v", err)}, nil
	}

	var parts []string
	for _, para := range doc.Body.Paragraphs {
		if text := paragraphText(para); text != "" {
			parts = append(parts, text)
		}
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			if text := rowText(row); text != "" {
				parts = append(parts, text)
			}
		}
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", []string{"word document contains no text"}, nil
	}
	return text, nil, nil
}

func paragraphText(para wordParagraph) string {
	var b strings.Builder
	for _, run := range para.Runs {
		b.WriteString(run.Text)
	}
	return strings.TrimSpace(b.String())
}

func rowText(row wordRow) string {
	var cells []string
	for _, cell := range row.Cells {
		var b strings.Builder
		for _, para := range cell.Paragraphs {
			b.WriteString(paragraphText(para))
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			cells = append(cells, text)
		}
	}
	return strings.Join(cells, " | ")
}
