// Package pipeline sequences one receipt scan: preprocess, recognize,
// extract, score, assemble. Each scan is a pure function of its input image
// aside from the progress side channel; nothing is shared across scans.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spendlens/receiptscan/internal/draft"
	"github.com/spendlens/receiptscan/internal/extract"
	"github.com/spendlens/receiptscan/internal/preprocess"
	"github.com/spendlens/receiptscan/internal/recognize"
)

// State identifies where a scan is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StatePreprocessing
	StateRecognizing
	StateExtracting
	StateScoring
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreprocessing:
		return "preprocessing"
	case StateRecognizing:
		return "recognizing"
	case StateExtracting:
		return "extracting"
	case StateScoring:
		return "scoring"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrRecognition is the only fatal scan outcome: the recognition engine
// failed or produced no usable text. Callers retry with a new image.
var ErrRecognition = errors.New("failed to process receipt, please try a clearer image")

// Progress is one step update delivered to the caller during a scan.
type Progress struct {
	State   State
	Step    string
	Percent int
}

// ProgressFunc receives progress updates. Percentages are monotonically
// non-decreasing over the life of one scan.
type ProgressFunc func(Progress)

// TimeSource provides the current time; injectable so the date fallback is
// deterministic under test.
type TimeSource interface {
	Now() time.Time
}

type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// Pipeline runs scans against one recognition engine. Safe for concurrent
// use: every scan's state lives in its own invocation.
type Pipeline struct {
	recognizer recognize.Recognizer
	timeSource TimeSource
}

// New creates a Pipeline using the system clock.
func New(recognizer recognize.Recognizer) *Pipeline {
	return &Pipeline{recognizer: recognizer, timeSource: systemTime{}}
}

// NewWithTimeSource creates a Pipeline with a custom clock for testing.
func NewWithTimeSource(recognizer recognize.Recognizer, ts TimeSource) *Pipeline {
	return &Pipeline{recognizer: recognizer, timeSource: ts}
}

// Scan processes one image into a TransactionDraft. Undecodable input is
// rejected before the pipeline starts (preprocess.ErrNotImage); a recognizer
// failure aborts the scan with ErrRecognition and no draft. Extractor misses
// never fail a scan.
func (p *Pipeline) Scan(ctx context.Context, data []byte, contentType string, onProgress ProgressFunc) (*draft.TransactionDraft, error) {
	img, err := preprocess.Decode(data, contentType)
	if err != nil {
		return nil, err
	}

	run := &run{onProgress: onProgress}
	run.enter(StatePreprocessing, "preprocessing image", 5)

	pngData, err := preprocess.EncodePNG(preprocess.Binarize(img))
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run.enter(StateRecognizing, "initializing recognition engine", 10)

	text, err := p.recognizer.Recognize(ctx, pngData, run.recognizerProgress)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		run.enter(StateFailed, "recognition failed", run.last)
		return nil, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run.enter(StateExtracting, "extracting fields", 75)
	fields := extract.All(text, p.timeSource.Now())
	run.emit("extracting fields", 85)

	run.enter(StateScoring, "scoring", 90)
	d := draft.Assemble(fields, text)

	run.enter(StateComplete, "complete", 100)
	return &d, nil
}

// FromText runs extraction, scoring and assembly over already-recognized
// text, bypassing preprocessing and recognition. Everything but the date
// fallback is a pure function of the text.
func (p *Pipeline) FromText(text string) draft.TransactionDraft {
	return draft.Assemble(extract.All(text, p.timeSource.Now()), text)
}

// run tracks per-scan progress state and clamps percentages monotonic.
type run struct {
	state      State
	last       int
	onProgress ProgressFunc
}

func (r *run) enter(s State, step string, percent int) {
	r.state = s
	r.emit(step, percent)
}

func (r *run) emit(step string, percent int) {
	if percent < r.last {
		percent = r.last
	}
	r.last = percent
	if r.onProgress != nil {
		r.onProgress(Progress{State: r.state, Step: step, Percent: percent})
	}
}

// recognizerProgress maps engine-local progress onto the overall scan.
// Model loading pins to 15, engine init to 10, and recognition proper scales
// into the 20-70 band.
func (r *run) recognizerProgress(phase string, percent int) {
	lower := strings.ToLower(phase)
	switch {
	case strings.Contains(lower, "init"):
		r.emit(phase, 10)
	case strings.Contains(lower, "load"):
		r.emit(phase, 15)
	default:
		if percent < 0 {
			percent = 0
		} else if percent > 100 {
			percent = 100
		}
		r.emit(phase, 20+percent/2)
	}
}
