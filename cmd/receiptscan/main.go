// Command receiptscan scans a single receipt image and prints the resulting
// transaction draft as JSON on stdout, with progress on stderr.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/spendlens/receiptscan/internal/pipeline"
	"github.com/spendlens/receiptscan/internal/recognize"
)

func main() {
	fs := ff.NewFlagSet("receiptscan")
	var (
		file          = fs.StringLong("file", "", "Receipt image to scan (jpeg, png, gif, heic, pdf)")
		contentType   = fs.StringLong("content-type", "", "MIME type of the file (default: inferred from extension)")
		engineType    = fs.StringLong("engine", "tesseract", "Recognition engine: 'gemini', 'ollama' or 'tesseract'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		tesseractBin  = fs.StringLong("tesseract-bin", "tesseract", "Tesseract binary path")
		tesseractLang = fs.StringLong("tesseract-lang", "eng", "Tesseract language")
		quiet         = fs.BoolLong("quiet", "Suppress progress output")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPTSCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *file == "" {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintln(os.Stderr, "error: --file is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %v\n", *file, err)
		os.Exit(1)
	}

	mimeType := *contentType
	if mimeType == "" {
		mimeType = contentTypeFromExt(*file)
	}

	var engine recognize.Recognizer
	switch *engineType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		engine, err = recognize.NewGemini(context.Background(), apiKey, *geminiModel)
	case "ollama":
		engine, err = recognize.NewOllama(*ollamaURL, *ollamaModel)
	case "tesseract":
		engine, err = recognize.NewTesseract(*tesseractBin, *tesseractLang, 0)
	default:
		err = fmt.Errorf("unknown engine %q", *engineType)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	// Ctrl-C abandons the scan; nothing is persisted, so there is nothing
	// to clean up beyond the engine.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onProgress := func(p pipeline.Progress) {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", p.Percent, p.Step)
		}
	}

	d, err := pipeline.New(engine).Scan(ctx, data, mimeType, onProgress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding draft: %v\n", err)
		os.Exit(1)
	}
}

func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "image/jpeg"
	}
}
