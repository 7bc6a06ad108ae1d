package spacy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/medscrub/medscrub/internal/core/domain"
)

func TestRecognizeBucketsNativeLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ent" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[
			{"text":"John Smith","label":"PERSON"},
			{"text":"Mumbai","label":"GPE"},
			{"text":"Western Ghats","label":"LOC"},
			{"text":"Apollo Labs","label":"ORG"},
			{"text":"January 2024","label":"DATE"},
			{"text":"500 rupees","label":"MONEY"},
			{"text":"hemoglobin","label":"PRODUCT"}
		]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	got, err := client.Recognize(context.Background(), "report text")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if len(got[domain.EntityPersons]) != 1 || got[domain.EntityPersons][0] != "John Smith" {
		t.Fatalf("unexpected persons: %v", got[domain.EntityPersons])
	}
	if len(got[domain.EntityLocations]) != 2 {
		t.Fatalf("expected GPE and LOC merged into locations, got %v", got[domain.EntityLocations])
	}
	if len(got[domain.EntityOrganizations]) != 1 || len(got[domain.EntityDates]) != 1 || len(got[domain.EntityMoney]) != 1 {
		t.Fatalf("unexpected buckets: %v", got)
	}
}

func TestRecognizeDropsUnknownLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"text":"aspirin","label":"PRODUCT"}]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	got, err := client.Recognize(context.Background(), "text")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	for key, bucket := range got {
		if len(bucket) != 0 {
			t.Fatalf("expected all-empty buckets, got %q: %v", key, bucket)
		}
	}
}

func TestRecognizeIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	_, err := client.Recognize(context.Background(), "text")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model loading") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestAvailableUsesHealthEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, time.Second, nil)
	if !client.Available(context.Background()) {
		t.Fatalf("expected available")
	}

	server.Close()
	if client.Available(context.Background()) {
		t.Fatalf("expected unavailable after shutdown")
	}
}
