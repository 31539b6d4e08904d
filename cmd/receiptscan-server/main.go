package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/spendlens/receiptscan/internal/pipeline"
	"github.com/spendlens/receiptscan/internal/recognize"
	"github.com/spendlens/receiptscan/internal/review"
)

const version = "0.2.0"

func main() {
	fs := ff.NewFlagSet("receiptscan-server")
	var (
		port          = fs.IntLong("port", 8080, "HTTP server port")
		dbPath        = fs.StringLong("db", "receiptscan.db", "Database file path")
		storagePath   = fs.StringLong("storage", "./uploads", "Upload storage directory")
		engineType    = fs.StringLong("engine", "gemini", "Recognition engine: 'gemini', 'ollama' or 'tesseract'")
		geminiKey     = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel   = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL     = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel   = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		tesseractBin  = fs.StringLong("tesseract-bin", "tesseract", "Tesseract binary path")
		tesseractLang = fs.StringLong("tesseract-lang", "eng", "Tesseract language")
		authUser      = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass      = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion   = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("RECEIPTSCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	slog.Info("Initializing database...")
	store, err := review.NewBoltStore(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	engine, err := newEngine(*engineType, engineConfig{
		geminiKey:     *geminiKey,
		geminiModel:   *geminiModel,
		ollamaURL:     *ollamaURL,
		ollamaModel:   *ollamaModel,
		tesseractBin:  *tesseractBin,
		tesseractLang: *tesseractLang,
	})
	if err != nil {
		slog.Error("Failed to initialize recognition engine", "engine", *engineType, "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	slog.Info("Initializing storage...")
	storage, err := review.NewDiskStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := review.NewService(store, storage, pipeline.New(engine))

	basicAuth := review.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := review.NewServer(service, basicAuth)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "engine", *engineType)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}

type engineConfig struct {
	geminiKey     string
	geminiModel   string
	ollamaURL     string
	ollamaModel   string
	tesseractBin  string
	tesseractLang string
}

func newEngine(engineType string, cfg engineConfig) (recognize.Recognizer, error) {
	switch engineType {
	case "gemini":
		apiKey := cfg.geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("gemini API key is required: set --gemini-key or GEMINI_API_KEY")
		}
		return recognize.NewGemini(context.Background(), apiKey, cfg.geminiModel)
	case "ollama":
		return recognize.NewOllama(cfg.ollamaURL, cfg.ollamaModel)
	case "tesseract":
		return recognize.NewTesseract(cfg.tesseractBin, cfg.tesseractLang, 0)
	default:
		return nil, fmt.Errorf("unknown engine %q: valid values are gemini, ollama, tesseract", engineType)
	}
}
