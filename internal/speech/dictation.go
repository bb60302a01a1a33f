package speech

import (
	"context"
	"errors"
	"sync/atomic"
)

var (
	// ErrCaptureActive is returned when a capture starts while another is
	// still running.
	ErrCaptureActive = errors.New("speech: a dictation capture is already active")

	// ErrNoRecognizer is returned when no recognizer is configured.
	ErrNoRecognizer = errors.New("speech: dictation is not available")
)

// Recognizer turns one spoken utterance into text.
type Recognizer interface {
	Recognize(ctx context.Context, lang string) (string, error)
}

// Dictation allows a single active capture at a time. Overlapping requests
// are rejected rather than queued.
type Dictation struct {
	rec    Recognizer
	active atomic.Bool
}

// NewDictation wraps rec, which may be nil.
func NewDictation(rec Recognizer) *Dictation {
	return &Dictation{rec: rec}
}

// Available reports whether a recognizer is configured.
func (d *Dictation) Available() bool {
	return d != nil && d.rec != nil
}

// Active reports whether a capture is running.
func (d *Dictation) Active() bool {
	return d.active.Load()
}

// Capture records one utterance in lang.
func (d *Dictation) Capture(ctx context.Context, lang string) (string, error) {
	if !d.Available() {
		return "", ErrNoRecognizer
	}
	if !d.active.CompareAndSwap(false, true) {
		return "", ErrCaptureActive
	}
	defer d.active.Store(false)
	return d.rec.Recognize(ctx, lang)
}
