package redaction

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the tunable thresholds of the noise passes. The repeated
// window heuristic can over-redact legitimately repeated phrasing (for
// example a recurring "normal range" qualifier), so deployments tune it here
// instead of editing the engine.
type Policy struct {
	RepeatWindowWords int `yaml:"repeat_window_words"`
	RepeatMinCount    int `yaml:"repeat_min_count"`
	MinLineLength     int `yaml:"min_line_length"`
}

func DefaultPolicy() Policy {
	return Policy{
		RepeatWindowWords: 5,
		RepeatMinCount:    3,
		MinLineLength:     3,
	}
}

// LoadPolicy reads an optional YAML policy file. An empty path yields the
// default policy.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read redaction policy: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse redaction policy: %w", err)
	}
	return p.normalize(), nil
}

func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	if p.RepeatWindowWords <= 0 {
		p.RepeatWindowWords = def.RepeatWindowWords
	}
	if p.RepeatMinCount <= 1 {
		p.RepeatMinCount = def.RepeatMinCount
	}
	if p.MinLineLength <= 0 {
		p.MinLineLength = def.MinLineLength
	}
	return p
}
