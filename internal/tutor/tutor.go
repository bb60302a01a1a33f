// Package tutor asks the configured LLM why a quiz answer was wrong.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/polyglot/internal/llm"
	"github.com/abhisek/polyglot/internal/quiz"
)

// Unavailable is shown when no explanation could be produced.
const Unavailable = "No explanation available."

// Input describes one missed question.
type Input struct {
	Kind      quiz.Kind
	Prompt    string
	Expected  string
	Given     string
	LearnLang string
	// Grammar is set for conjugation questions.
	Grammar string
}

// Explanation is the tutor's answer.
type Explanation struct {
	Text string
	Tip  string
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the quiz screen.
func DefaultConfig() Config {
	return Config{MaxTokens: 300, Temperature: 0.3}
}

// Schema is the structured output requested from the provider.
var Schema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "Why a language-learning answer was wrong, with a memory tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "1-3 sentences on why the expected answer is correct and what the learner mixed up",
				"minLength":   1,
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One short mnemonic or rule of thumb",
			},
		},
		"required":             []any{"explanation", "tip"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a patient language tutor. A learner just answered a practice question incorrectly.
Explain briefly and concretely why the expected answer is right. Mention the specific difference from the learner's answer
(spelling, accent, gender, tense, person, word choice). Do not repeat the question. Keep it encouraging.`

// Service generates explanations in the background. At most one request is
// in flight; a newer request cancels and replaces the older one.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	pending bool
	result  *Explanation
	err     error
	ready   bool
}

// NewService returns a tutor backed by provider. A nil provider yields a
// service whose requests resolve immediately to an error.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether a provider is attached.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// Request starts generating an explanation for in.
func (s *Service) Request(ctx context.Context, in Input) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.pending, s.ready = true, false
	s.result, s.err = nil, nil
	s.mu.Unlock()

	go func() {
		defer cancel()
		exp, err := s.Explain(ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.result, s.err = exp, err
		s.pending, s.ready = false, true
		s.cancel = nil
	}()
}

// Pending reports whether a request is still running.
func (s *Service) Pending() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Result is a finished request.
type Result struct {
	Explanation *Explanation
	Err         error
}

// Message returns the text to show the learner.
func (r Result) Message() string {
	if r.Err != nil || r.Explanation == nil || r.Explanation.Text == "" {
		return Unavailable
	}
	if r.Explanation.Tip == "" {
		return r.Explanation.Text
	}
	return r.Explanation.Text + "\nTip: " + r.Explanation.Tip
}

// Consume returns the latest finished result and clears it. ok is false
// while nothing is ready.
func (s *Service) Consume() (Result, bool) {
	if s == nil {
		return Result{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	r := Result{Explanation: s.result, Err: s.err}
	s.result, s.err, s.ready = nil, nil, false
	return r, true
}

// Cancel abandons the in-flight request, if any.
func (s *Service) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.pending, s.ready = false, false
	s.result, s.err = nil, nil
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

// Explain calls the provider synchronously.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("tutor: no LLM provider configured")
	}
	ctx = llm.WithPurpose(ctx, "tutor")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		slog.Warn("tutor explanation failed", "kind", string(in.Kind), "error", err)
		return nil, fmt.Errorf("explanation: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation: %w", err)
	}
	return &Explanation{
		Text: strings.TrimSpace(out.Explanation),
		Tip:  strings.TrimSpace(out.Tip),
	}, nil
}

func buildUserMessage(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question type: %s\n", in.Kind.Label())
	if in.LearnLang != "" {
		fmt.Fprintf(&b, "Language being learned: %s\n", in.LearnLang)
	}
	if in.Grammar != "" {
		fmt.Fprintf(&b, "Grammar: %s\n", in.Grammar)
	}
	fmt.Fprintf(&b, "Prompt: %s\n", in.Prompt)
	fmt.Fprintf(&b, "Expected answer: %s\n", in.Expected)
	given := in.Given
	if strings.TrimSpace(given) == "" {
		given = "(left blank)"
	}
	fmt.Fprintf(&b, "Learner's answer: %s\n", given)
	return b.String()
}
