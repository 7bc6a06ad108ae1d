package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractSpreadsheet reads every sheet of an xlsx workbook, one line per
// row, non-empty cells joined by " | " like word-document table rows.
func extractSpreadsheet(data []byte) (string, []string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", []string{fmt.Sprintf("spreadsheet unreadable: %v", err)}, nil
	}
	defer book.Close()

	var parts []string
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", []string{fmt.Sprintf("read sheet %q: %v", sheet, err)}, nil
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row {
				if trimmed := strings.TrimSpace(cell); trimmed != "" {
					cells = append(cells, trimmed)
				}
			}
			if len(cells) > 0 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
	}

	text := strings.Join(parts, "\n")
	if strings.TrimSpace(text) == "" {
		return "", []string{"spreadsheet contains no cell text"}, nil
	}
	return text, nil, nil
}
