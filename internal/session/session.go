package session

import (
	"errors"
	"math"
	"time"

	"github.com/abhisek/polyglot/internal/quiz"
)

var (
	// ErrSessionDone is returned when submitting to a finished session.
	ErrSessionDone = errors.New("session already finished")

	// ErrNoQuestions is returned when a source yields an empty set.
	ErrNoQuestions = errors.New("no questions generated")
)

// NewSessionState starts an attempt with questions from source. When the
// source fails (for example with quiz.ErrInsufficientContent) no session is
// created.
func NewSessionState(sessionID, courseID, chapterID string, kind quiz.Kind, source QuestionSource) (*SessionState, error) {
	state := &SessionState{
		CourseID:  courseID,
		ChapterID: chapterID,
		Kind:      kind,
		source:    source,
	}
	if err := reset(state, sessionID); err != nil {
		return nil, err
	}
	return state, nil
}

func reset(state *SessionState, sessionID string) error {
	questions, err := state.source()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	state.SessionID = sessionID
	state.Questions = questions
	state.Index = 0
	state.Score = 0
	state.Phase = PhaseAnswering
	state.Input = ""
	state.LastCorrect = false
	state.Results = nil
	state.FinalPercent = 0
	state.StartTime = time.Now()
	state.EndTime = time.Time{}
	return nil
}

// Current returns the question being asked, or nil when done.
func Current(state *SessionState) *quiz.Question {
	if state.Phase == PhaseDone || state.Index >= len(state.Questions) {
		return nil
	}
	return &state.Questions[state.Index]
}

// Submit is the single learner action. On an unanswered question it grades
// input and reveals the result without advancing. On a revealed question it
// advances, ignoring input, and finishes the session after the last one.
func Submit(state *SessionState, input string) (Outcome, error) {
	switch state.Phase {
	case PhaseAnswering:
		q := Current(state)
		correct := quiz.CheckAnswer(input, q)
		if correct {
			state.Score++
		}
		state.Input = input
		state.LastCorrect = correct
		state.Results = append(state.Results, AnswerResult{Question: *q, Given: input, Correct: correct})
		state.Phase = PhaseRevealed
		return Outcome{Graded: true, Correct: correct}, nil

	case PhaseRevealed:
		state.Input = ""
		state.Index++
		if state.Index >= len(state.Questions) {
			finish(state)
			return Outcome{Advanced: true, Finished: true}, nil
		}
		state.Phase = PhaseAnswering
		return Outcome{Advanced: true}, nil

	default:
		return Outcome{}, ErrSessionDone
	}
}

func finish(state *SessionState) {
	state.Phase = PhaseDone
	state.EndTime = time.Now()
	state.FinalPercent = Percent(state.Score, len(state.Questions))
}

// Percent is round(100 * score / total), 0 when total is 0.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}

// Retry discards the attempt and starts a new one on a freshly generated
// question set. The state is left untouched if generation fails.
func Retry(state *SessionState, sessionID string) error {
	return reset(state, sessionID)
}

// Progress returns the 1-based question number and the total.
func Progress(state *SessionState) (int, int) {
	n := state.Index + 1
	if n > len(state.Questions) {
		n = len(state.Questions)
	}
	return n, len(state.Questions)
}
