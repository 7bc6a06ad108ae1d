// Package prompt holds the fixed summarization instruction shared by every
// LLM tier. The prompt enumerates the excluded PII categories explicitly:
// the redaction stage is heuristic, so the model is told to drop anything
// that slipped through.
package prompt

import "fmt"

// MaxInputChars bounds how much cleaned text is handed to a model.
const MaxInputChars = 2000

const summaryInstruction = `You are a medical report analyzer. Generate a short medical summary.

Never include:
- names (patient, doctor, beneficiary, worker)
- age, gender, physical measurements
- phone numbers or contact information
- addresses, locations, districts, postal codes
- registration numbers, IDs, report codes
- dates and times
- lab names and facility locations

Only include:
- medical test results (normal and abnormal ranges)
- important health findings
- recommendations for treatment

Write only one or two short paragraphs in simple language.

Medical report data:
%s

Generate the medical summary focusing only on test results and health recommendations. No personal information.`

func BuildSummaryPrompt(text string) string {
	return fmt.Sprintf(summaryInstruction, truncate(text, MaxInputChars))
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
