package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/polyglot/internal/llm"
	"github.com/abhisek/polyglot/internal/quiz"
)

func testInput() Input {
	return Input{
		Kind:      quiz.KindFillIn,
		Prompt:    "Good morning.",
		Expected:  "Buenos días.",
		Given:     "buenas dias",
		LearnLang: "es",
	}
}

func waitResult(t *testing.T, s *Service) Result {
	t.Helper()
	var (
		r  Result
		ok bool
	)
	require.Eventually(t, func() bool {
		r, ok = s.Consume()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	return r
}

func TestService_Explains(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":" Día is masculine, so it takes buenos. ","tip":"El día, buenos días."}`),
	})
	svc := NewService(mock, DefaultConfig())

	svc.Request(context.Background(), testInput())
	r := waitResult(t, svc)

	require.NoError(t, r.Err)
	assert.Equal(t, "Día is masculine, so it takes buenos.", r.Explanation.Text)
	assert.Equal(t, "El día, buenos días.", r.Explanation.Tip)
	assert.Equal(t, "Día is masculine, so it takes buenos.\nTip: El día, buenos días.", r.Message())
	assert.False(t, svc.Pending())

	_, ok := svc.Consume()
	assert.False(t, ok, "result should be cleared after consume")
}

func TestService_PromptCarriesAnswers(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"x","tip":"y"}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), testInput())
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, Schema, req.Schema)
	assert.Equal(t, 300, req.MaxTokens)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Fill in the blank")
	assert.Contains(t, msg, "Expected answer: Buenos días.")
	assert.Contains(t, msg, "Learner's answer: buenas dias")
}

func TestService_BlankAnswer(t *testing.T) {
	in := testInput()
	in.Given = "  "
	assert.True(t, strings.Contains(buildUserMessage(in), "(left blank)"))
}

func TestService_ProviderFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	svc := NewService(mock, DefaultConfig())

	svc.Request(context.Background(), testInput())
	r := waitResult(t, svc)

	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, r.Err, &unavail)
	assert.Equal(t, Unavailable, r.Message())
}

func TestService_InvalidShapeDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"tip":"only a tip"}`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Explain(context.Background(), testInput())
	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestService_Disabled(t *testing.T) {
	svc := NewService(nil, DefaultConfig())
	assert.False(t, svc.Enabled())

	svc.Request(context.Background(), testInput())
	r := waitResult(t, svc)
	assert.Error(t, r.Err)
	assert.Equal(t, Unavailable, r.Message())
}

// gatedProvider blocks each call until released or cancelled.
type gatedProvider struct {
	release chan string
	started chan struct{}
}

func (g *gatedProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	g.started <- struct{}{}
	select {
	case text := <-g.release:
		return &llm.Response{Content: json.RawMessage(`{"explanation":"` + text + `","tip":""}`)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedProvider) ModelID() string { return "gated" }

func TestService_NewerRequestReplacesOlder(t *testing.T) {
	p := &gatedProvider{release: make(chan string), started: make(chan struct{}, 2)}
	svc := NewService(p, DefaultConfig())

	svc.Request(context.Background(), testInput())
	<-p.started
	second := testInput()
	second.Expected = "Buenas noches."
	svc.Request(context.Background(), second)
	<-p.started

	p.release <- "second"
	r := waitResult(t, svc)
	require.NoError(t, r.Err)
	assert.Equal(t, "second", r.Explanation.Text)

	// The first request was cancelled and never surfaces.
	time.Sleep(20 * time.Millisecond)
	_, ok := svc.Consume()
	assert.False(t, ok)
}

func TestService_Cancel(t *testing.T) {
	p := &gatedProvider{release: make(chan string), started: make(chan struct{}, 1)}
	svc := NewService(p, DefaultConfig())

	svc.Request(context.Background(), testInput())
	<-p.started
	assert.True(t, svc.Pending())

	svc.Cancel()
	assert.False(t, svc.Pending())
	time.Sleep(20 * time.Millisecond)
	_, ok := svc.Consume()
	assert.False(t, ok)
}
