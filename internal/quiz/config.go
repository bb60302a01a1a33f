package quiz

// Config holds question-set sizing.
type Config struct {
	// MinQuestions is the smallest usable pool. Smaller pools are rejected.
	MinQuestions int

	// MaxVocabQuestions caps multiple choice and fill-in sets.
	MaxVocabQuestions int

	// MaxGrammarQuestions caps conjugation sets.
	MaxGrammarQuestions int

	// Distractors is the number of wrong options per multiple choice question.
	Distractors int
}

// DefaultConfig returns the standard sizing.
func DefaultConfig() Config {
	return Config{
		MinQuestions:        4,
		MaxVocabQuestions:   8,
		MaxGrammarQuestions: 10,
		Distractors:         3,
	}
}
