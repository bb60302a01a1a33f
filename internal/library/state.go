package library

import "github.com/abhisek/polyglot/internal/spacedrep"

// Persisted keys.
const (
	KeyData    = "polyglot_trainer_data_v1"
	KeyState   = "polyglot_trainer_state_v1"
	KeyMastery = "polyglot_trainer_mastery_v1"
)

// Tab is the chapter view last opened.
type Tab string

const (
	TabLearn   Tab = "learn"
	TabDialog  Tab = "dialog"
	TabGrammar Tab = "grammar"
	TabQuiz    Tab = "quiz"
)

// NavState is the navigation and flashcard state persisted between runs.
type NavState struct {
	CourseID    string                `json:"courseId,omitempty"`
	ChapterID   string                `json:"chapterId,omitempty"`
	Tab         Tab                   `json:"tab,omitempty"`
	Proficiency spacedrep.Proficiency `json:"proficiency,omitempty"`
	History     []string              `json:"history,omitempty"`
}

// DefaultNavState is the state of a fresh install.
func DefaultNavState() NavState {
	return NavState{Tab: TabLearn, Proficiency: spacedrep.Proficiency{}}
}
