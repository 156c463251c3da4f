// Package ocr defines the text recognition contract used by page analysis
// and an adapter for the tesseract command.
//
// Recognition runs on a composited page view, never on the live overlay,
// so a failing engine cannot disturb annotation state. Failures are
// reported as *Error values that callers may retry.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/gogpu/ink"
)

// Word is one recognized word. Confidence is in [0, 100].
type Word struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence"`
	Box        image.Rectangle `json:"bbox"`
}

// Result is the output of one recognition pass.
type Result struct {
	FullText string `json:"fullText"`
	Words    []Word `json:"words"`
}

// Recognizer extracts text from an image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (Result, error)
}

// RecognizerFunc adapts a function to Recognizer.
type RecognizerFunc func(ctx context.Context, img image.Image) (Result, error)

// Recognize calls f.
func (f RecognizerFunc) Recognize(ctx context.Context, img image.Image) (Result, error) {
	return f(ctx, img)
}

// ErrNoImage is returned by Analyze for a nil or empty image.
var ErrNoImage = errors.New("ocr: no image")

// Error is a recognition failure. It leaves no state behind, so the same
// request can be retried.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ocr: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure may succeed on a later attempt.
// Canceled or timed-out requests are not retried automatically.
func (e *Error) Retryable() bool {
	return !errors.Is(e.Err, context.Canceled) && !errors.Is(e.Err, context.DeadlineExceeded)
}

// Analyze runs r on img and normalizes the result: words are trimmed,
// empty words dropped, and boxes clipped to the image bounds.
func Analyze(ctx context.Context, r Recognizer, img image.Image) (Result, error) {
	if img == nil || img.Bounds().Empty() {
		return Result{}, &Error{Op: "analyze", Err: ErrNoImage}
	}
	res, err := r.Recognize(ctx, img)
	if err != nil {
		ink.Logger().Warn("ocr: recognition failed", "err", err)
		var oe *Error
		if errors.As(err, &oe) {
			return Result{}, oe
		}
		return Result{}, &Error{Op: "recognize", Err: err}
	}

	b := img.Bounds()
	words := res.Words[:0:0]
	for _, w := range res.Words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		w.Box = w.Box.Canon().Intersect(b)
		w.Confidence = min(max(w.Confidence, 0), 100)
		words = append(words, w)
	}
	res.Words = words
	ink.Logger().Debug("ocr: analyzed", "words", len(words))
	return res, nil
}

// Confident returns the words with confidence of at least minimum.
func (r Result) Confident(minimum float64) []Word {
	var out []Word
	for _, w := range r.Words {
		if w.Confidence >= minimum {
			out = append(out, w)
		}
	}
	return out
}

// Within returns the words whose boxes overlap rect.
func (r Result) Within(rect image.Rectangle) []Word {
	var out []Word
	for _, w := range r.Words {
		if w.Box.Overlaps(rect) {
			out = append(out, w)
		}
	}
	return out
}

// MedianHeight returns the median word box height, or 0 with no words.
func (r Result) MedianHeight() float64 {
	if len(r.Words) == 0 {
		return 0
	}
	hs := make([]int, len(r.Words))
	for i, w := range r.Words {
		hs[i] = w.Box.Dy()
	}
	slices.Sort(hs)
	n := len(hs)
	if n%2 == 1 {
		return float64(hs[n/2])
	}
	return float64(hs[n/2-1]+hs[n/2]) / 2
}
