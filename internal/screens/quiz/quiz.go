package quiz

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/polyglot/internal/content"
	"github.com/abhisek/polyglot/internal/quiz"
	"github.com/abhisek/polyglot/internal/router"
	"github.com/abhisek/polyglot/internal/screen"
	"github.com/abhisek/polyglot/internal/screens/summary"
	sess "github.com/abhisek/polyglot/internal/session"
	"github.com/abhisek/polyglot/internal/store"
	"github.com/abhisek/polyglot/internal/tutor"
	"github.com/abhisek/polyglot/internal/ui/components"
	"github.com/abhisek/polyglot/internal/ui/layout"
)

// QuizScreen runs one quiz attempt on a chapter.
type QuizScreen struct {
	svc     *screen.Services
	course  *content.Course
	chapter *content.Chapter
	kind    quiz.Kind

	state *sess.SessionState
	mc    components.MultiChoice
	input components.TextInput

	confirmingQuit bool
	explaining     bool
	explanation    string
	errMsg         string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscCapturer = (*QuizScreen)(nil)

// New creates a quiz screen and generates its question set. When the
// chapter cannot support the quiz kind the screen shows the error instead.
func New(svc *screen.Services, course *content.Course, chapter *content.Chapter, kind quiz.Kind) *QuizScreen {
	s := &QuizScreen{svc: svc, course: course, chapter: chapter, kind: kind}
	source := func() ([]quiz.Question, error) {
		return svc.Bank.Build(kind, chapter)
	}
	state, err := sess.NewSessionState(uuid.New().String(), course.ID, chapter.ID, kind, source)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.state = state
	s.prepareQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.state == nil {
		return nil
	}
	s.svc.RecordQuiz(s.event(store.QuizActionStart))
	if s.kind == quiz.KindMultipleChoice {
		return nil
	}
	return s.input.Init()
}

func (s *QuizScreen) Title() string {
	return s.kind.Label()
}

// CapturesEsc is always true: Esc asks before abandoning the attempt.
func (s *QuizScreen) CapturesEsc() bool {
	return s.errMsg == ""
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.state == nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmingQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Phase == sess.PhaseRevealed:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if s.svc.Speech.Enabled() {
			hints = append(hints, layout.KeyHint{Key: "P", Description: "Pronounce"})
		}
		if s.canExplain() {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	case s.kind == quiz.KindMultipleChoice:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Esc", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationTickMsg:
		return s.handleExplanationTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answeringText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Nothing to quiz on; any key goes back.
	if s.state == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmingQuit {
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmingQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		s.confirmingQuit = true
		return s, nil
	}

	switch s.state.Phase {
	case sess.PhaseRevealed:
		switch key {
		case "enter":
			return s.advance()
		case "p", "P":
			s.pronounce()
		case "e", "E":
			return s, s.explain()
		}
		return s, nil

	case sess.PhaseAnswering:
		if s.kind == quiz.KindMultipleChoice {
			s.mc, _ = s.mc.Update(msg)
			if s.mc.Submitted {
				return s.submit(s.mc.Chosen())
			}
			return s, nil
		}
		if key == "enter" {
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// submit grades the current question and records the answer.
func (s *QuizScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	q := sess.Current(s.state)
	if q == nil {
		return s, nil
	}
	out, err := sess.Submit(s.state, answer)
	if err != nil || !out.Graded {
		return s, nil
	}
	if s.kind != quiz.KindMultipleChoice {
		s.input.Mark(out.Correct)
	}

	s.svc.RecordAnswer(store.AnswerEventData{
		SessionID: s.state.SessionID,
		CourseID:  s.course.ID,
		ChapterID: s.chapter.ID,
		Kind:      string(s.kind),
		ItemID:    q.ItemID,
		Prompt:    q.Text(),
		Expected:  q.Answer,
		Given:     answer,
		Correct:   out.Correct,
	})
	return s, nil
}

// advance moves past a revealed question, finishing the attempt after the
// last one.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	out, err := sess.Submit(s.state, "")
	if err != nil {
		return s, nil
	}
	s.svc.Tutor.Cancel()
	s.explaining = false
	s.explanation = ""

	if out.Finished {
		return s, s.finish()
	}
	s.prepareQuestion()
	if s.kind == quiz.KindMultipleChoice {
		return s, nil
	}
	return s, s.input.Init()
}

func (s *QuizScreen) finish() tea.Cmd {
	st := s.state
	s.svc.RecordQuiz(s.event(store.QuizActionComplete))
	transition := s.svc.Library.RecordCompletion(context.Background(), st.CourseID, st.ChapterID, st.FinalPercent)

	next := summary.New(sess.BuildSummary(st), s.chapter.Title, summary.Options{
		Transition: &transition,
		Retry:      s.retry,
	})
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// retry restarts the attempt on a fresh question set.
func (s *QuizScreen) retry() (screen.Screen, error) {
	if err := sess.Retry(s.state, uuid.New().String()); err != nil {
		return nil, err
	}
	s.confirmingQuit = false
	s.explaining = false
	s.explanation = ""
	s.prepareQuestion()
	return s, nil
}

func (s *QuizScreen) abandon() tea.Cmd {
	s.svc.Tutor.Cancel()
	s.svc.RecordQuiz(s.event(store.QuizActionAbandon))
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *QuizScreen) event(action string) store.QuizEventData {
	st := s.state
	data := store.QuizEventData{
		SessionID:      st.SessionID,
		CourseID:       st.CourseID,
		ChapterID:      st.ChapterID,
		Kind:           string(st.Kind),
		Action:         action,
		TotalQuestions: len(st.Questions),
		CorrectAnswers: st.Score,
	}
	if action == store.QuizActionStart {
		data.CorrectAnswers = 0
		return data
	}
	end := st.EndTime
	if end.IsZero() {
		end = time.Now()
	}
	data.Percent = sess.Percent(st.Score, len(st.Questions))
	data.DurationSecs = int(end.Sub(st.StartTime).Seconds())
	return data
}

// prepareQuestion resets the answer widgets for the current question.
func (s *QuizScreen) prepareQuestion() {
	q := sess.Current(s.state)
	if q == nil {
		return
	}
	if s.kind == quiz.KindMultipleChoice {
		s.mc = components.NewMultiChoice(q.Options, q.AnswerIndex())
		return
	}
	s.input = components.NewTextInput("Type your answer...", 80)
}

func (s *QuizScreen) answeringText() bool {
	return s.state != nil && s.state.Phase == sess.PhaseAnswering &&
		!s.confirmingQuit && s.kind != quiz.KindMultipleChoice
}

// pronounce speaks the learned-language side of the current question.
func (s *QuizScreen) pronounce() {
	q := sess.Current(s.state)
	if q == nil {
		return
	}
	text := q.Answer
	if q.Kind == quiz.KindMultipleChoice {
		text = q.Prompt
	}
	s.svc.Pronounce(text, s.course.LearnLang)
}

// canExplain reports whether the tutor can be asked about the revealed
// answer. Only wrong free-text answers are explained.
func (s *QuizScreen) canExplain() bool {
	return s.svc.TutorEnabled() &&
		s.kind != quiz.KindMultipleChoice &&
		s.state.Phase == sess.PhaseRevealed &&
		!s.state.LastCorrect &&
		s.explanation == ""
}

func (s *QuizScreen) explain() tea.Cmd {
	if !s.canExplain() || s.explaining {
		return nil
	}
	q := sess.Current(s.state)
	s.svc.Tutor.Request(context.Background(), tutor.Input{
		Kind:      q.Kind,
		Prompt:    q.Text(),
		Expected:  q.Answer,
		Given:     s.state.Input,
		LearnLang: s.course.LearnLang,
		Grammar:   grammarContext(q),
	})
	s.explaining = true
	return explanationTick()
}

// grammarContext names the form a conjugation question asks for.
func grammarContext(q *quiz.Question) string {
	if q.Grammar == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s tense, person %s", q.Grammar.Lemma, q.Grammar.Tense, q.Grammar.Person)
}

func (s *QuizScreen) handleExplanationTick() (screen.Screen, tea.Cmd) {
	if !s.explaining {
		return s, nil
	}
	if res, ok := s.svc.Tutor.Consume(); ok {
		s.explaining = false
		s.explanation = res.Message()
		return s, nil
	}
	if !s.svc.Tutor.Pending() {
		s.explaining = false
		s.explanation = tutor.Unavailable
		return s, nil
	}
	return s, explanationTick()
}

func explanationTick() tea.Cmd {
	return tea.Tick(explanationPollInterval, func(t time.Time) tea.Msg {
		return explanationTickMsg(t)
	})
}
