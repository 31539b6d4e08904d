package recognize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Tesseract implements Recognizer by shelling out to the tesseract CLI.
// Fully offline; one process is spawned per call, so concurrent scans do
// not contend for a shared engine.
type Tesseract struct {
	binary   string
	language string
	psm      int
}

// NewTesseract creates a tesseract-backed recognizer. The binary must be on
// PATH unless an explicit path is given.
func NewTesseract(binary string, language string, psm int) (*Tesseract, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("locating tesseract binary: %w", err)
	}
	return &Tesseract{binary: binary, language: language, psm: psm}, nil
}

// Recognize writes the image to a temp file and runs
// `tesseract <file> stdout -l <lang>`.
func (t *Tesseract) Recognize(ctx context.Context, pngData []byte, progress ProgressFunc) (string, error) {
	emit(progress, "loading model", 0)

	tmpDir, err := os.MkdirTemp("", "receiptscan-ocr")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	imagePath := filepath.Join(tmpDir, "page.png")
	if err := os.WriteFile(imagePath, pngData, 0600); err != nil {
		return "", fmt.Errorf("writing temp image: %w", err)
	}

	args := []string{imagePath, "stdout", "-l", t.language}
	if t.psm > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", t.psm))
	}

	emit(progress, "recognizing text", 10)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, stderr.String())
	}

	emit(progress, "recognizing text", 100)

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", fmt.Errorf("tesseract returned no text")
	}
	return text, nil
}

// Close is a no-op; nothing is held between calls.
func (t *Tesseract) Close() error {
	return nil
}
