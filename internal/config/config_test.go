package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("REMOTE_LLM_TIMEOUT_SECONDS", "")
	t.Setenv("SUMMARY_MAX_SENTENCES", "")

	cfg := Load()
	if cfg.NATSSubject != "documents.process" {
		t.Fatalf("expected default subject, got %q", cfg.NATSSubject)
	}
	if cfg.OllamaModel != "mistral:7b-instruct" {
		t.Fatalf("expected default local model, got %q", cfg.OllamaModel)
	}
	if cfg.RemoteLLMTimeoutSeconds != 60 {
		t.Fatalf("expected default remote timeout 60, got %d", cfg.RemoteLLMTimeoutSeconds)
	}
	if cfg.SummaryMaxSentences != 5 {
		t.Fatalf("expected default summary sentences 5, got %d", cfg.SummaryMaxSentences)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("TESSERACT_LANGUAGE", "eng+hin")
	t.Setenv("PROCESS_TIMEOUT_SECONDS", "120")
	t.Setenv("REDACTION_POLICY_PATH", "/etc/medscrub/policy.yaml")

	cfg := Load()
	if cfg.TesseractLanguage != "eng+hin" {
		t.Fatalf("expected language override, got %q", cfg.TesseractLanguage)
	}
	if cfg.ProcessTimeoutSeconds != 120 {
		t.Fatalf("expected timeout override, got %d", cfg.ProcessTimeoutSeconds)
	}
	if cfg.RedactionPolicyPath != "/etc/medscrub/policy.yaml" {
		t.Fatalf("expected policy path override, got %q", cfg.RedactionPolicyPath)
	}
}

func TestLoadFallsBackOnMalformedInt(t *testing.T) {
	t.Setenv("PROCESS_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()
	if cfg.ProcessTimeoutSeconds != 300 {
		t.Fatalf("expected default on malformed int, got %d", cfg.ProcessTimeoutSeconds)
	}
}
