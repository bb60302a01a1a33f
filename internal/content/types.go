package content

// Data is the full curriculum document. It is what gets persisted, exported
// and imported as a single JSON object.
type Data struct {
	ContentVersion int `json:"contentVersion"`

	// Revision counts local edits made through the editor. It is independent
	// of ContentVersion so edits survive the version gate.
	Revision int      `json:"revision,omitempty"`
	Courses  []Course `json:"courses"`
}

// Course is one language pair.
type Course struct {
	ID            string    `json:"id"`
	Label         string    `json:"label"`
	LearnLang     string    `json:"learnLang"`
	TranslateLang string    `json:"translateLang,omitempty"`
	Chapters      []Chapter `json:"chapters"`
}

// Chapter groups vocabulary, dialogs and grammar for one topic.
//
// Vocabulary may be stored under "vocab" or the legacy "items" field. Use
// NormalizedVocab instead of reading either field directly.
type Chapter struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Color   string         `json:"color,omitempty"`
	Tips    []Tip          `json:"tips,omitempty"`
	Vocab   []VocabItem    `json:"vocab,omitempty"`
	Items   []VocabItem    `json:"items,omitempty"`
	Dialogs []Dialog       `json:"dialogs,omitempty"`
	Grammar []GrammarTopic `json:"grammar,omitempty"`
}

// Tip is a short titled note shown with a chapter.
type Tip struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// VocabItem is a phrase pair. Source is in the language being learned,
// Target is its translation.
type VocabItem struct {
	ID     string `json:"id"`
	Type   string `json:"type,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Dialog is a scripted conversation.
type Dialog struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Roles       []Turn   `json:"roles"`
	Translation []string `json:"translation,omitempty"`
}

// Turn is one speaker's utterances.
type Turn struct {
	Who   string   `json:"who"`
	Lines []string `json:"lines"`
}

// Lines returns every utterance of the dialog in order, paired with its speaker.
func (d Dialog) Lines() []DialogLine {
	var out []DialogLine
	for _, t := range d.Roles {
		for _, l := range t.Lines {
			out = append(out, DialogLine{Who: t.Who, Text: l})
		}
	}
	for i := range out {
		if i < len(d.Translation) {
			out[i].Translation = d.Translation[i]
		}
	}
	return out
}

// DialogLine is a flattened dialog utterance.
type DialogLine struct {
	Who         string
	Text        string
	Translation string
}

// GrammarTopic holds a conjugation table and optional examples.
type GrammarTopic struct {
	ID       string    `json:"id,omitempty"`
	Topic    string    `json:"topic"`
	Notes    string    `json:"notes,omitempty"`
	Forms    Forms     `json:"forms,omitempty"`
	Examples []Example `json:"examples,omitempty"`
}

// Label returns the topic label, falling back to the id.
func (g GrammarTopic) Label() string {
	if g.Topic != "" {
		return g.Topic
	}
	return g.ID
}

// Example is a usage sentence for a grammar topic.
type Example struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// GrammarRecord is one flattened cell of a conjugation table.
type GrammarRecord struct {
	Lemma    string `json:"lemma"`
	Tense    string `json:"tense"`
	Person   string `json:"person"`
	Expected string `json:"expected"`
}

// FindCourse returns the course with the given id.
func (d *Data) FindCourse(id string) (*Course, bool) {
	for i := range d.Courses {
		if d.Courses[i].ID == id {
			return &d.Courses[i], true
		}
	}
	return nil, false
}

// FindChapter returns the chapter with the given id.
func (c *Course) FindChapter(id string) (*Chapter, bool) {
	for i := range c.Chapters {
		if c.Chapters[i].ID == id {
			return &c.Chapters[i], true
		}
	}
	return nil, false
}
