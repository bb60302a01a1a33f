package session

import (
	"time"

	"github.com/abhisek/polyglot/internal/quiz"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID      string
	CourseID       string
	ChapterID      string
	Kind           quiz.Kind
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Percent        int
	Missed         []AnswerResult
}

// BuildSummary creates a SessionSummary from a finished or abandoned session.
func BuildSummary(state *SessionState) *SessionSummary {
	end := state.EndTime
	if end.IsZero() {
		end = time.Now()
	}

	var missed []AnswerResult
	for _, r := range state.Results {
		if !r.Correct {
			missed = append(missed, r)
		}
	}

	percent := state.FinalPercent
	if state.Phase != PhaseDone {
		percent = Percent(state.Score, len(state.Questions))
	}

	return &SessionSummary{
		SessionID:      state.SessionID,
		CourseID:       state.CourseID,
		ChapterID:      state.ChapterID,
		Kind:           state.Kind,
		Duration:       end.Sub(state.StartTime),
		TotalQuestions: len(state.Questions),
		TotalCorrect:   state.Score,
		Percent:        percent,
		Missed:         missed,
	}
}
