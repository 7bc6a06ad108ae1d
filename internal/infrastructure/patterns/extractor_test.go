package patterns

import (
	"strings"
	"testing"

	"github.com/medscrub/medscrub/internal/core/domain"
)

func TestExtractPhoneNumbersCoversSeparatorVariants(t *testing.T) {
	e := NewExtractor()

	got := e.ExtractPhoneNumbers("Call +91-9876543210 today.")
	if !contains(got, "+91-9876543210") {
		t.Fatalf("expected country-code mobile in %v", got)
	}

	got = e.ExtractPhoneNumbers("Reach me at 9812345678 soon.")
	if !contains(got, "9812345678") {
		t.Fatalf("expected bare mobile in %v", got)
	}

	got = e.ExtractPhoneNumbers("Office line 011-45671234 is staffed.")
	if !contains(got, "011-45671234") {
		t.Fatalf("expected landline in %v", got)
	}
}

func TestExtractNationalIDsAcceptsTwelveDigitForms(t *testing.T) {
	e := NewExtractor()

	got := e.ExtractNationalIDs("IDs: 1234 5678 9012 and 9876-5432-1098 and 123456789012.")
	for _, want := range []string{"1234 5678 9012", "9876-5432-1098", "123456789012"} {
		if !contains(got, want) {
			t.Fatalf("expected %q in %v", want, got)
		}
	}
}

func TestExtractNationalIDsRejectsWrongLength(t *testing.T) {
	e := NewExtractor()

	if got := e.ExtractNationalIDs("card 1234567890123456 and short 12345678901"); len(got) != 0 {
		t.Fatalf("expected no ids for wrong-length digit runs, got %v", got)
	}
}

func TestExtractDatesCoversFourFormats(t *testing.T) {
	e := NewExtractor()

	got := e.ExtractDates("Visited 15/01/2024 then 2024-03-20 then 15 January 2024 and January 16, 2024.")
	for _, want := range []string{"15/01/2024", "2024-03-20", "15 January 2024", "January 16, 2024"} {
		if !contains(got, want) {
			t.Fatalf("expected %q in %v", want, got)
		}
	}
}

func TestExtractDeduplicatesFirstSeen(t *testing.T) {
	e := NewExtractor()

	got := e.ExtractDates("Report dated 15/01/2024, re-issued 15/01/2024.")
	if len(got) != 1 || got[0] != "15/01/2024" {
		t.Fatalf("expected single deduplicated date, got %v", got)
	}
}

func TestExtractAllUsesFixedFieldKeys(t *testing.T) {
	e := NewExtractor()

	got := e.ExtractAll("Call 9812345678 about card 1234 5678 9012 issued 15/01/2024.")
	for _, key := range []string{domain.FieldPhoneNumbers, domain.FieldNationalIDs, domain.FieldDates} {
		if _, ok := got[key]; !ok {
			t.Fatalf("missing field %q in %v", key, got)
		}
	}
	if !contains(got[domain.FieldDates], "15/01/2024") {
		t.Fatalf("expected date in %v", got[domain.FieldDates])
	}
	if !contains(got[domain.FieldNationalIDs], "1234 5678 9012") {
		t.Fatalf("expected national id in %v", got[domain.FieldNationalIDs])
	}
}

func TestMaskNationalIDsKeepsLastFour(t *testing.T) {
	e := NewExtractor()

	got := e.MaskNationalIDs("ID: 123456789012", '#')
	if got != "ID: ########9012" {
		t.Fatalf("unexpected masked text: %q", got)
	}
	if strings.Contains(got, "12345678") {
		t.Fatalf("leading digits leaked: %q", got)
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
