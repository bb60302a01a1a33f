package quiz

import (
	"fmt"

	"github.com/abhisek/polyglot/internal/content"
)

// Kind identifies a quiz mode.
type Kind string

const (
	KindMultipleChoice Kind = "mcq"
	KindFillIn         Kind = "fill"
	KindGrammar        Kind = "grammar"
)

// Kinds lists every quiz mode in menu order.
var Kinds = []Kind{KindMultipleChoice, KindFillIn, KindGrammar}

// Label returns a human readable name for the mode.
func (k Kind) Label() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple choice"
	case KindFillIn:
		return "Fill in the blank"
	case KindGrammar:
		return "Conjugation"
	default:
		return string(k)
	}
}

// ParseKind converts a CLI or stored value into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown quiz kind %q (want mcq, fill or grammar)", s)
}

// Question is a single generated quiz question.
type Question struct {
	Kind Kind

	// Prompt is what the learner sees. For multiple choice it is the source
	// phrase; for fill-in it is the translation.
	Prompt string

	// Answer is the correct option (multiple choice) or the expected input.
	Answer string

	// Options holds the shuffled choices for multiple choice, including Answer
	// exactly once.
	Options []string

	// ItemID is the vocabulary item the question was built from.
	ItemID string

	// Grammar carries lemma, tense and person for conjugation questions.
	Grammar *content.GrammarRecord
}

// AnswerIndex returns the position of the correct option, or -1.
func (q *Question) AnswerIndex() int {
	for i, o := range q.Options {
		if o == q.Answer {
			return i
		}
	}
	return -1
}

// Text renders the prompt as shown to the learner.
func (q *Question) Text() string {
	if q.Kind == KindGrammar && q.Grammar != nil {
		return fmt.Sprintf("%s · %s · %s", q.Grammar.Lemma, q.Grammar.Tense, q.Grammar.Person)
	}
	return q.Prompt
}
