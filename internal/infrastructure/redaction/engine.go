package redaction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Engine applies the ordered PII rule table and then the generic noise
// passes. Redact is a pure function over its input and never raises: the
// pipeline falls back to the raw text if it ever returns an error.
//
// Completeness is explicitly not guaranteed. Pattern-based redaction has an
// irreducible false-negative risk; that is an accepted limitation.
type Engine struct {
	rules  []Rule
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	rules := defaultRules()
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })
	return &Engine{
		rules:  rules,
		policy: policy.normalize(),
	}
}

// Rules exposes the active table so each entry can be exercised on its own.
func (e *Engine) Rules() []Rule {
	return e.rules
}

func (e *Engine) Redact(text string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = text
			err = fmt.Errorf("redaction engine: %v", r)
		}
	}()

	for _, rule := range e.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}

	text = stripTemplateNoise(text)
	text = stripSymbolNoise(text)
	text = dropNoiseLines(text, e.policy.MinLineLength)
	text = dedupeRepeatedWindows(text, e.policy.RepeatWindowWords, e.policy.RepeatMinCount)
	text = collapseWhitespace(text)
	return text, nil
}

var (
	templatePlaceholders = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\[Your Name\]`),
		regexp.MustCompile(`(?i)\[Your Company Name\]`),
		regexp.MustCompile(`(?i)\[Your Address\]`),
		regexp.MustCompile(`(?i)\[Your Email\]`),
		regexp.MustCompile(`(?i)\[Your Phone\]`),
		regexp.MustCompile(`(?i)your\s+logo\s+here`),
		regexp.MustCompile(`(?i)company\s+logo`),
		regexp.MustCompile(`(?i)insert\s+logo`),
		regexp.MustCompile(`(?i)logo\s+placeholder`),
		regexp.MustCompile(`(?i)enter\s+your\s+\w+`),
		regexp.MustCompile(`(?i)type\s+here`),
		regexp.MustCompile(`(?i)click\s+to\s+add`),
		regexp.MustCompile(`(?i)draft|sample|template|specimen`),
	}

	// Square brackets stay in the allowed set so the redaction placeholders
	// survive the cleanup pass.
	disallowedChars = regexp.MustCompile(`[^\w\s.,!?;:()\-'"/\[\]]`)
	repeatedDots    = regexp.MustCompile(`\.{3,}`)
	repeatedDashes  = regexp.MustCompile(`-{2,}`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// stripTemplateNoise removes document-template placeholders and watermark
// phrases that carry no medical content.
func stripTemplateNoise(text string) string {
	for _, p := range templatePlaceholders {
		text = p.ReplaceAllString(text, "")
	}
	return text
}

// stripSymbolNoise normalizes punctuation runs and drops characters outside
// the allowed set.
func stripSymbolNoise(text string) string {
	text = disallowedChars.ReplaceAllString(text, "")
	text = repeatedDots.ReplaceAllString(text, "...")
	text = repeatedDashes.ReplaceAllString(text, "-")
	return text
}

// dropNoiseLines removes lines made only of separator symbols and lines at
// or under minLen characters, keeping bare terminal punctuation.
func dropNoiseLines(text string, minLen int) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isSymbolOnly(line) {
			continue
		}
		if len(line) <= minLen && line != "." && line != "!" && line != "?" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

func isSymbolOnly(line string) bool {
	for _, r := range line {
		switch r {
		case '.', '-', '_', '=', '*', '#', '@':
		default:
			return false
		}
	}
	return true
}

// dedupeRepeatedWindows removes header/footer/watermark artifacts: any
// window-word sequence occurring at least minCount times keeps exactly one
// occurrence. Window size and threshold are policy, not hard requirements;
// aggressive values can eat legitimately repeated medical phrasing.
func dedupeRepeatedWindows(text string, window, minCount int) string {
	words := strings.Fields(text)
	if len(words) <= 20 || window <= 0 || minCount <= 1 {
		return text
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i+window <= len(words); i++ {
		phrase := strings.Join(words[i:i+window], " ")
		if counts[phrase] == 0 {
			order = append(order, phrase)
		}
		counts[phrase]++
	}

	for _, phrase := range order {
		if counts[phrase] < minCount {
			continue
		}
		first := strings.Index(text, phrase)
		if first < 0 {
			continue
		}
		head := text[:first+len(phrase)]
		tail := strings.ReplaceAll(text[first+len(phrase):], phrase, "")
		text = head + tail
	}
	return text
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}
