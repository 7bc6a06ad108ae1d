package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// extractPlainText decodes using an ordered chain: UTF-8 signature, UTF-16
// BOMs, valid UTF-8, Windows-1252, ISO-8859-1. Windows-1252 comes before
// ISO-8859-1 because the latter accepts every byte sequence and would
// silently mis-decode smart quotes and dashes.
func extractPlainText(data []byte) (string, []string, error) {
	if len(data) == 0 {
		return "", []string{"empty text file"}, nil
	}

	text, ok := decodeText(data)
	if !ok {
		return "", []string{"unable to decode text file, file may be binary or use an unsupported encoding"}, nil
	}
	return normalizeText(text), nil, nil
}

func decodeText(data []byte) (string, bool) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:]), true
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(decoder, data); err == nil {
			return string(decoded), true
		}
		return "", false
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(decoder, data); err == nil {
			return string(decoded), true
		}
		return "", false
	}

	if utf8.Valid(data) {
		return string(data), true
	}

	for _, cm := range []*charmap.Charmap{charmap.Windows1252, charmap.ISO8859_1} {
		if decoded, _, err := transform.Bytes(cm.NewDecoder(), data); err == nil {
			return string(decoded), true
		}
	}
	return "", false
}

// normalizeText unifies line endings, drops NUL bytes and trims trailing
// whitespace per line without otherwise rewriting content.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
