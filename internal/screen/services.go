package screen

import (
	"context"
	"log/slog"

	"github.com/abhisek/polyglot/internal/library"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/speech"
	"github.com/abhisek/polyglot/internal/store"
	"github.com/abhisek/polyglot/internal/tutor"
)

// Services bundles the dependencies screens share. Events, Speech and Tutor
// may be nil; a nil Bank leaves every quiz disabled.
type Services struct {
	Library *library.Library
	Bank    *quiz.Bank
	Events  store.EventRepo
	Speech  *speech.Player
	Tutor   *tutor.Service
}

// Pronounce speaks text if a player is attached.
func (s *Services) Pronounce(text, lang string) {
	if s == nil || s.Speech == nil {
		return
	}
	s.Speech.Pronounce(text, lang)
}

// TutorEnabled reports whether wrong-answer explanations are available.
func (s *Services) TutorEnabled() bool {
	return s != nil && s.Tutor.Enabled()
}

// RecordQuiz appends a quiz lifecycle event. Failures are logged only.
func (s *Services) RecordQuiz(data store.QuizEventData) {
	if s == nil || s.Events == nil {
		return
	}
	if err := s.Events.AppendQuizEvent(context.Background(), data); err != nil {
		slog.Warn("record quiz event", "session", data.SessionID, "action", data.Action, "error", err)
	}
}

// RecordAnswer appends a graded answer event. Failures are logged only.
func (s *Services) RecordAnswer(data store.AnswerEventData) {
	if s == nil || s.Events == nil {
		return
	}
	if err := s.Events.AppendAnswerEvent(context.Background(), data); err != nil {
		slog.Warn("record answer event", "session", data.SessionID, "error", err)
	}
}
