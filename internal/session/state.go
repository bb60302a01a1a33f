package session

import (
	"time"

	"github.com/abhisek/polyglot/internal/quiz"
)

// Phase is the state of the current question.
type Phase int

const (
	PhaseAnswering Phase = iota // Waiting for an answer
	PhaseRevealed               // Graded; the next submit advances
	PhaseDone                   // All questions answered
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseRevealed:
		return "revealed"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// QuestionSource produces a fresh question set. It is called once when the
// session starts and again on every retry.
type QuestionSource func() ([]quiz.Question, error)

// SessionState tracks one quiz attempt.
type SessionState struct {
	// SessionID is the UUID for this attempt.
	SessionID string

	CourseID  string
	ChapterID string
	Kind      quiz.Kind

	// Questions is the generated set, fixed for the lifetime of the attempt.
	Questions []quiz.Question

	// Index points at the current question.
	Index int

	// Score is the number of questions answered correctly so far.
	Score int

	Phase Phase

	// Input is the learner's answer for the current question. It is cleared
	// when the session advances.
	Input string

	// LastCorrect is the grade of the most recently revealed question.
	LastCorrect bool

	// Results records every graded answer in order.
	Results []AnswerResult

	// FinalPercent is set once Phase is PhaseDone.
	FinalPercent int

	StartTime time.Time
	EndTime   time.Time

	source QuestionSource
}

// AnswerResult is one graded answer.
type AnswerResult struct {
	Question quiz.Question
	Given    string
	Correct  bool
}

// Outcome reports what a Submit call did.
type Outcome struct {
	// Graded is true when the call graded the current question.
	Graded  bool
	Correct bool

	// Advanced is true when the call moved past a revealed question.
	Advanced bool

	// Finished is true when the call completed the session.
	Finished bool
}
