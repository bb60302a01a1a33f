package speech

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Player pronounces text with at most one utterance in flight. A new
// Pronounce cancels the previous one and starts only after it has returned.
// Failures are logged, never returned.
type Player struct {
	speaker Speaker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{} // closed when the latest utterance returns
	gen    uint64
	wg     sync.WaitGroup
}

// NewPlayer returns a player for s. A nil speaker makes every call a no-op.
func NewPlayer(s Speaker) *Player {
	return &Player{speaker: s}
}

// Enabled reports whether a speaker is attached.
func (p *Player) Enabled() bool {
	return p != nil && p.speaker != nil
}

// Pronounce starts speaking text and returns immediately.
func (p *Player) Pronounce(text, lang string) {
	if !p.Enabled() || text == "" {
		return
	}

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	prev, done := p.done, make(chan struct{})
	p.cancel, p.done = cancel, done
	p.gen++
	gen := p.gen
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		// Superseded while the previous utterance was shutting down.
		if ctx.Err() == nil {
			err := p.speaker.Speak(ctx, text, lang)
			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("pronunciation failed", "lang", lang, "error", err)
			}
		}

		p.mu.Lock()
		if p.gen == gen {
			p.cancel = nil
		}
		p.mu.Unlock()
		cancel()
	}()
}

// Stop cancels the current utterance, if any.
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()
}

// Close stops playback and waits for the speaker to return.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.Stop()
	p.wg.Wait()
}
