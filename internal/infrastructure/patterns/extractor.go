// Package patterns implements the stateless regex extraction of phone
// numbers, national identification numbers, and dates, plus the display
// masking utility. Each family runs several candidate patterns covering
// separator variants and deduplicates while preserving first-seen order.
package patterns

import (
	"regexp"
	"strings"

	"github.com/medscrub/medscrub/internal/core/domain"
)

const monthNames = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`

var (
	phonePatterns = []*regexp.Regexp{
		// Mobile with country code: +91-9876543210, +919876543210.
		regexp.MustCompile(`[+]?91[-\s]?[6-9]\d{9}`),
		// Landline with STD code: 011-12345678, (011) 12345678.
		regexp.MustCompile(`\(?\d{2,4}\)?[-\s]?\d{6,8}`),
		// Bare 10-digit mobile.
		regexp.MustCompile(`\b[6-9]\d{9}\b`),
	}

	nationalIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`),
		regexp.MustCompile(`\b\d{4}-\d{4}-\d{4}\b`),
		regexp.MustCompile(`\b\d{12}\b`),
	}

	datePatterns = []*regexp.Regexp{
		// DD/MM/YYYY, DD-MM-YYYY, DD.MM.YYYY.
		regexp.MustCompile(`\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4}\b`),
		// YYYY/MM/DD, YYYY-MM-DD.
		regexp.MustCompile(`\b\d{4}[/\-.]\d{1,2}[/\-.]\d{1,2}\b`),
		// 15 January 2024, 15 Jan 2024.
		regexp.MustCompile(`(?i)\b\d{1,2}\s+` + monthNames + `\s+\d{4}\b`),
		// January 15, 2024.
		regexp.MustCompile(`(?i)\b` + monthNames + `\s+\d{1,2},?\s+\d{4}\b`),
	}

	idSeparators = regexp.MustCompile(`[\s-]`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
)

// Extractor is stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractPhoneNumbers(text string) []string {
	return collect(text, phonePatterns)
}

// ExtractNationalIDs returns candidates that clean to exactly twelve digits
// once separators are stripped; everything else is discarded.
func (e *Extractor) ExtractNationalIDs(text string) []string {
	candidates := collect(text, nationalIDPatterns)
	valid := make([]string, 0, len(candidates))
	for _, c := range candidates {
		cleaned := idSeparators.ReplaceAllString(c, "")
		if len(cleaned) == 12 && digitsOnly.MatchString(cleaned) {
			valid = append(valid, c)
		}
	}
	return valid
}

// ExtractDates matches four independent formats. Distinct textual renderings
// of the same calendar date are kept as-is; there is no cross-format
// normalization.
func (e *Extractor) ExtractDates(text string) []string {
	return collect(text, datePatterns)
}

func (e *Extractor) ExtractAll(text string) map[string][]string {
	return map[string][]string{
		domain.FieldPhoneNumbers: e.ExtractPhoneNumbers(text),
		domain.FieldNationalIDs:  e.ExtractNationalIDs(text),
		domain.FieldDates:        e.ExtractDates(text),
	}
}

// MaskNationalIDs replaces all but the last four characters of each national
// ID match for display purposes.
func (e *Extractor) MaskNationalIDs(text string, maskChar rune) string {
	for _, p := range nationalIDPatterns {
		text = p.ReplaceAllStringFunc(text, func(m string) string {
			if len(m) <= 4 {
				return m
			}
			return strings.Repeat(string(maskChar), 8) + m[len(m)-4:]
		})
	}
	return text
}

// collect runs every pattern and deduplicates matches in first-seen order.
func collect(text string, pats []*regexp.Regexp) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range pats {
		for _, m := range p.FindAllString(text, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
