package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/polyglot/internal/content"
)

// Bank builds randomized question sets from chapter content.
type Bank struct {
	rng *rand.Rand
	cfg Config
}

// NewBank creates a question bank. A nil rng is replaced by a time-seeded
// source; pass a seeded one for reproducible sets.
func NewBank(rng *rand.Rand, cfg Config) *Bank {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return &Bank{rng: rng, cfg: cfg}
}

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build generates a question set of the given kind for a chapter.
func (b *Bank) Build(kind Kind, ch *content.Chapter) ([]Question, error) {
	switch kind {
	case KindMultipleChoice:
		return b.MultipleChoice(content.Pool(ch))
	case KindFillIn:
		return b.FillIn(content.Pool(ch))
	case KindGrammar:
		var topics []content.GrammarTopic
		if ch != nil {
			topics = ch.Grammar
		}
		return b.Grammar(content.FlattenGrammar(topics))
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// Available reports whether the chapter has enough material for kind. A nil
// bank offers nothing.
func (b *Bank) Available(kind Kind, ch *content.Chapter) bool {
	if b == nil || ch == nil {
		return false
	}
	switch kind {
	case KindMultipleChoice:
		return len(mcStems(content.Pool(ch))) >= b.cfg.MinQuestions
	case KindFillIn:
		return len(fillStems(content.Pool(ch))) >= b.cfg.MinQuestions
	case KindGrammar:
		return len(uniqueRecords(content.FlattenGrammar(ch.Grammar))) >= b.cfg.MinQuestions
	}
	return false
}

// size applies clamp(n, min, max) and rejects pools below min.
func (b *Bank) size(kind Kind, n, maxQ int) (int, error) {
	if n < b.cfg.MinQuestions {
		return 0, &InsufficientContentError{Kind: kind, Have: n, Need: b.cfg.MinQuestions}
	}
	return min(n, maxQ), nil
}

// MultipleChoice picks stems without replacement. Each question shows the
// source phrase and offers the stem's translation plus up to Distractors
// other translations, with no option text repeated. Items repeating an
// earlier source phrase are not used as stems.
func (b *Bank) MultipleChoice(pool []content.VocabItem) ([]Question, error) {
	stemPool := mcStems(pool)
	count, err := b.size(KindMultipleChoice, len(stemPool), b.cfg.MaxVocabQuestions)
	if err != nil {
		return nil, err
	}

	stems := b.rng.Perm(len(stemPool))[:count]
	questions := make([]Question, 0, count)
	for _, si := range stems {
		stem := stemPool[si]
		options := []string{stem.Target}
		seen := map[string]bool{stem.Target: true}

		for _, ci := range b.rng.Perm(len(pool)) {
			if len(options) > b.cfg.Distractors {
				break
			}
			cand := pool[ci].Target
			if seen[cand] {
				continue
			}
			seen[cand] = true
			options = append(options, cand)
		}
		b.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, Question{
			Kind:    KindMultipleChoice,
			Prompt:  stem.Source,
			Answer:  stem.Target,
			Options: options,
			ItemID:  stem.ID,
		})
	}
	return questions, nil
}

// FillIn shows the translation and expects the source phrase back. Each
// translation is asked at most once.
func (b *Bank) FillIn(pool []content.VocabItem) ([]Question, error) {
	pool = fillStems(pool)
	count, err := b.size(KindFillIn, len(pool), b.cfg.MaxVocabQuestions)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, count)
	for _, i := range b.rng.Perm(len(pool))[:count] {
		it := pool[i]
		questions = append(questions, Question{
			Kind:   KindFillIn,
			Prompt: it.Target,
			Answer: it.Source,
			ItemID: it.ID,
		})
	}
	return questions, nil
}

// Grammar asks for conjugated forms drawn from the flattened records, one
// question per (lemma, tense, person).
func (b *Bank) Grammar(records []content.GrammarRecord) ([]Question, error) {
	records = uniqueRecords(records)
	count, err := b.size(KindGrammar, len(records), b.cfg.MaxGrammarQuestions)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, count)
	for _, i := range b.rng.Perm(len(records))[:count] {
		rec := records[i]
		questions = append(questions, Question{
			Kind:    KindGrammar,
			Prompt:  rec.Lemma,
			Answer:  rec.Expected,
			Grammar: &rec,
		})
	}
	return questions, nil
}
