package tesseract

import (
	"context"
	"testing"
)

func TestAvailableFalseForMissingBinary(t *testing.T) {
	e := New("definitely-not-a-real-ocr-binary", "eng")
	if e.Available(context.Background()) {
		t.Fatalf("expected unavailable for missing binary")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	e := New("", "")
	if e.binary != "tesseract" || e.language != "eng" {
		t.Fatalf("unexpected defaults: %+v", e)
	}
}

func TestRecognizeFailsForMissingBinary(t *testing.T) {
	e := New("definitely-not-a-real-ocr-binary", "eng")
	if _, err := e.Recognize(context.Background(), []byte("img")); err == nil {
		t.Fatalf("expected error for missing binary")
	}
}
