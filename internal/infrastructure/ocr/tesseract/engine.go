// Package tesseract drives the tesseract binary over stdin/stdout. The
// engine degrades to unavailable when the binary is not on PATH; it never
// installs or configures anything itself.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Engine struct {
	binary   string
	language string
}

func New(binary, language string) *Engine {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &Engine{binary: binary, language: language}
}

func (e *Engine) Available(_ context.Context) bool {
	_, err := exec.LookPath(e.binary)
	return err == nil
}

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, "stdin", "stdout", "-l", e.language)
	cmd.Stdin = bytes.NewReader(image)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("tesseract: %w", err)
		}
		return "", fmt.Errorf("tesseract: %w: %s", err, detail)
	}
	return stdout.String(), nil
}
