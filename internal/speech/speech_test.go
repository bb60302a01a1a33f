package speech

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// blockingSpeaker records utterances and blocks until cancelled.
type blockingSpeaker struct {
	mu        sync.Mutex
	started   []string
	cancelled []string
	startedCh chan string
}

func newBlockingSpeaker() *blockingSpeaker {
	return &blockingSpeaker{startedCh: make(chan string, 8)}
}

func (b *blockingSpeaker) Speak(ctx context.Context, text, _ string) error {
	b.mu.Lock()
	b.started = append(b.started, text)
	b.mu.Unlock()
	b.startedCh <- text

	<-ctx.Done()
	b.mu.Lock()
	b.cancelled = append(b.cancelled, text)
	b.mu.Unlock()
	return ctx.Err()
}

func (b *blockingSpeaker) snapshot() ([]string, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.started...), append([]string(nil), b.cancelled...)
}

func waitStarted(t *testing.T, b *blockingSpeaker, want string) {
	t.Helper()
	select {
	case got := <-b.startedCh:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("utterance %q never started", want)
	}
}

func TestPlayer_LastRequestWins(t *testing.T) {
	sp := newBlockingSpeaker()
	p := NewPlayer(sp)

	p.Pronounce("Hola.", "es")
	waitStarted(t, sp, "Hola.")
	p.Pronounce("Adiós.", "es")
	waitStarted(t, sp, "Adiós.")

	require.Eventually(t, func() bool {
		_, cancelled := sp.snapshot()
		return len(cancelled) == 1
	}, 2*time.Second, 5*time.Millisecond)

	_, cancelled := sp.snapshot()
	assert.Equal(t, []string{"Hola."}, cancelled)

	p.Close()
	started, cancelled := sp.snapshot()
	assert.Equal(t, []string{"Hola.", "Adiós."}, started)
	assert.Equal(t, []string{"Hola.", "Adiós."}, cancelled)
}

// slowStopSpeaker takes a while to return after cancellation, like a TTS
// process being torn down, and tracks how many calls overlap.
type slowStopSpeaker struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	calls   int
}

func (s *slowStopSpeaker) Speak(ctx context.Context, _, _ string) error {
	s.mu.Lock()
	s.active++
	s.calls++
	s.maxSeen = max(s.maxSeen, s.active)
	s.mu.Unlock()

	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return ctx.Err()
}

func TestPlayer_NoOverlapWhileStopping(t *testing.T) {
	sp := &slowStopSpeaker{}
	p := NewPlayer(sp)

	for _, text := range []string{"uno", "dos", "tres", "cuatro"} {
		p.Pronounce(text, "es")
		time.Sleep(2 * time.Millisecond)
	}
	p.Close()

	sp.mu.Lock()
	defer sp.mu.Unlock()
	assert.Equal(t, 1, sp.maxSeen, "utterances overlapped")
	assert.GreaterOrEqual(t, sp.calls, 1)
}

func TestPlayer_DisabledIsNoop(t *testing.T) {
	p := NewPlayer(nil)
	assert.False(t, p.Enabled())
	p.Pronounce("Hola.", "es")
	p.Stop()
	p.Close()

	var nilPlayer *Player
	nilPlayer.Pronounce("x", "es")
	nilPlayer.Close()
}

type failingSpeaker struct{ calls chan struct{} }

func (f failingSpeaker) Speak(context.Context, string, string) error {
	defer close(f.calls)
	return errors.New("no audio device")
}

func TestPlayer_SwallowsErrors(t *testing.T) {
	sp := failingSpeaker{calls: make(chan struct{})}
	p := NewPlayer(sp)

	p.Pronounce("Hola.", "es")
	select {
	case <-sp.calls:
	case <-time.After(2 * time.Second):
		t.Fatal("speaker never called")
	}
	p.Close()
}

func TestCommandSpeaker_Args(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	cs := CommandSpeaker{Name: "true", Args: []string{"-v", "{lang}"}}
	assert.NoError(t, cs.Speak(context.Background(), "Hola.", "es-ES"))

	bad := CommandSpeaker{Name: "false"}
	assert.Error(t, bad.Speak(context.Background(), "Hola.", "es"))
}

func TestVoice(t *testing.T) {
	tests := map[string]string{
		"es":    "es",
		"es-ES": "es",
		"ja_JP": "ja",
		" KO ":  "ko",
		"":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, voice(in), "voice(%q)", in)
	}
}

func TestParseCommand(t *testing.T) {
	cs, err := ParseCommand("espeak-ng -s 140 -v {lang}")
	require.NoError(t, err)
	assert.Equal(t, "espeak-ng", cs.Name)
	assert.Equal(t, []string{"-s", "140", "-v", "{lang}"}, cs.Args)

	_, err = ParseCommand("   ")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	installed := map[string]bool{"espeak": true}
	lookPath = func(name string) (string, error) {
		if installed[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}

	s, err := Detect("")
	require.NoError(t, err)
	require.NotNil(t, s)
	if cs, ok := s.(CommandSpeaker); ok && cs.Name != "say" {
		assert.Equal(t, "espeak", cs.Name)
	}

	_, err = Detect("piper --model x")
	assert.Error(t, err)

	installed = map[string]bool{}
	s, err = Detect("")
	require.NoError(t, err)
	assert.Nil(t, s)
}

type mockRecognizer struct {
	mock.Mock
	release chan struct{}
}

func (m *mockRecognizer) Recognize(ctx context.Context, lang string) (string, error) {
	args := m.Called(ctx, lang)
	if m.release != nil {
		<-m.release
	}
	return args.String(0), args.Error(1)
}

func TestDictation_Capture(t *testing.T) {
	rec := &mockRecognizer{}
	rec.On("Recognize", mock.Anything, "es").Return("hola", nil).Once()

	d := NewDictation(rec)
	got, err := d.Capture(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "hola", got)
	assert.False(t, d.Active())
	rec.AssertExpectations(t)
}

func TestDictation_RejectsOverlap(t *testing.T) {
	rec := &mockRecognizer{release: make(chan struct{})}
	rec.On("Recognize", mock.Anything, "ja").Return("konnichiwa", nil).Once()

	d := NewDictation(rec)
	done := make(chan error, 1)
	go func() {
		_, err := d.Capture(context.Background(), "ja")
		done <- err
	}()

	require.Eventually(t, d.Active, 2*time.Second, time.Millisecond)
	_, err := d.Capture(context.Background(), "ja")
	assert.ErrorIs(t, err, ErrCaptureActive)

	close(rec.release)
	require.NoError(t, <-done)
	assert.False(t, d.Active())
	rec.AssertNumberOfCalls(t, "Recognize", 1)
}

func TestDictation_NoRecognizer(t *testing.T) {
	d := NewDictation(nil)
	assert.False(t, d.Available())
	_, err := d.Capture(context.Background(), "es")
	assert.ErrorIs(t, err, ErrNoRecognizer)
}
