// Package recognize wraps external text recognition engines behind one
// interface. Engines receive a preprocessed PNG and return the raw text
// printed on the receipt, reporting coarse progress along the way.
package recognize

import "context"

// ProgressFunc receives a human-readable phase label and an engine-local
// percentage in [0,100]. Engines may emit zero or more events; percentages
// are expected to be non-decreasing.
type ProgressFunc func(phase string, percent int)

// Recognizer turns a preprocessed PNG into raw newline-separated text.
// A failed recognition is the only recoverable failure in a scan; callers
// retry with a new image rather than retrying the call.
type Recognizer interface {
	Recognize(ctx context.Context, pngData []byte, progress ProgressFunc) (string, error)

	// Close releases the underlying engine resources.
	Close() error
}

// transcribePrompt is shared by the vision-LLM engines. The model acts as a
// plain OCR device: verbatim text out, no interpretation.
const transcribePrompt = `You are reading a retail receipt. Transcribe every line of text visible in the image exactly as printed, from top to bottom, one receipt line per output line. Keep numbers, currency symbols and dates exactly as they appear. Do not summarize, translate, reorder or annotate anything. Output plain text only, with no markdown and no commentary.`

func emit(progress ProgressFunc, phase string, percent int) {
	if progress != nil {
		progress(phase, percent)
	}
}
