package prompt

import (
	"strings"
	"testing"
)

func TestBuildSummaryPromptEmbedsText(t *testing.T) {
	out := BuildSummaryPrompt("hemoglobin normal")
	if !strings.Contains(out, "hemoglobin normal") {
		t.Fatalf("input text missing from prompt")
	}
	if !strings.Contains(out, "No personal information") {
		t.Fatalf("privacy instruction missing from prompt")
	}
}

func TestBuildSummaryPromptTruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", MaxInputChars+500)
	out := BuildSummaryPrompt(long)
	if strings.Contains(out, strings.Repeat("a", MaxInputChars+1)) {
		t.Fatalf("input was not truncated")
	}
	if !strings.Contains(out, strings.Repeat("a", MaxInputChars)) {
		t.Fatalf("truncated input missing from prompt")
	}
}
