package localfs

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRemoveRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "doc.txt", strings.NewReader("report body")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := s.Open(ctx, "doc.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, err := io.ReadAll(r)
	_ = r.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "report body" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := s.Remove(ctx, "doc.txt"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := s.Open(ctx, "doc.txt"); err == nil {
		t.Fatalf("expected open to fail after remove")
	}
}

func TestOpenMissingKeyErrors(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.Open(context.Background(), "absent"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}
