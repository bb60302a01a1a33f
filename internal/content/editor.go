package content

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultColor is the chapter color used when a draft leaves it blank.
	DefaultColor = "from-brand-200 to-brand-50"

	// DefaultDialogTitle names a dialog saved without a title.
	DefaultDialogTitle = "Conversation"

	newChapterColor = "from-pink-200 to-pink-50"
)

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

// ChapterDraft is the editable form of a chapter. Tips and dialog lines are
// plain text, one entry per line.
type ChapterDraft struct {
	Title       string
	Color       string
	Tips        string
	Phrases     []VocabItem
	DialogTitle string
	LinesA      string
	LinesB      string
}

// DraftFromChapter loads a chapter into an editable draft.
func DraftFromChapter(ch *Chapter) ChapterDraft {
	d := ChapterDraft{
		Title: ch.Title,
		Color: ch.Color,
	}
	if d.Color == "" {
		d.Color = DefaultColor
	}

	vocab := NormalizedVocab(ch)
	d.Phrases = make([]VocabItem, len(vocab))
	copy(d.Phrases, vocab)

	if len(ch.Dialogs) > 0 {
		dlg := ch.Dialogs[0]
		d.DialogTitle = dlg.Title
		var a, b []string
		for _, t := range dlg.Roles {
			switch t.Who {
			case "A":
				a = append(a, t.Lines...)
			case "B":
				b = append(b, t.Lines...)
			}
		}
		d.LinesA = strings.Join(a, "\n")
		d.LinesB = strings.Join(b, "\n")
	}

	tips := make([]string, 0, len(ch.Tips))
	for _, t := range ch.Tips {
		tips = append(tips, t.Title+": "+t.Text)
	}
	d.Tips = strings.Join(tips, "\n")
	return d
}

// ParseTips reads "Title: text" lines. The title is everything before the
// first colon; lines without a title are dropped.
func ParseTips(text string) []Tip {
	var tips []Tip
	for _, line := range splitLines(text) {
		title, rest, _ := strings.Cut(line, ":")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		tips = append(tips, Tip{Title: title, Text: strings.TrimSpace(rest)})
	}
	return tips
}

// BuildDialog interleaves speaker A and B lines into a single dialog.
func BuildDialog(id, title, linesA, linesB string) Dialog {
	a := splitLines(linesA)
	b := splitLines(linesB)
	if strings.TrimSpace(title) == "" {
		title = DefaultDialogTitle
	}
	roles := []Turn{}
	for i := 0; i < max(len(a), len(b)); i++ {
		if i < len(a) {
			roles = append(roles, Turn{Who: "A", Lines: []string{a[i]}})
		}
		if i < len(b) {
			roles = append(roles, Turn{Who: "B", Lines: []string{b[i]}})
		}
	}
	return Dialog{ID: id, Title: title, Roles: roles, Translation: []string{}}
}

func splitLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Editor applies draft edits to curriculum data. Every mutation bumps the
// data's Revision.
type Editor struct {
	Now func() time.Time
	seq int64
}

// NewEditor returns an editor using the wall clock for generated ids.
func NewEditor() *Editor {
	return &Editor{Now: time.Now}
}

func (e *Editor) newID(prefix string) string {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	ms := now().UnixMilli() + e.seq
	e.seq++
	return prefix + strconv.FormatInt(ms, 36)
}

// AddPhrase appends an empty phrase to the draft.
func (e *Editor) AddPhrase(d *ChapterDraft) {
	d.Phrases = append(d.Phrases, VocabItem{ID: e.newID("n"), Type: "phrase"})
}

// RemovePhrase drops the phrase at idx. It reports whether idx was valid.
func (e *Editor) RemovePhrase(d *ChapterDraft, idx int) bool {
	if idx < 0 || idx >= len(d.Phrases) {
		return false
	}
	d.Phrases = append(d.Phrases[:idx:idx], d.Phrases[idx+1:]...)
	return true
}

// SaveChapter writes the draft over the chapter at (courseIdx, chapterIdx).
// The chapter keeps whichever vocabulary field it already used and its
// dialogs are replaced by the single dialog built from the draft.
func (e *Editor) SaveChapter(data *Data, courseIdx, chapterIdx int, draft ChapterDraft) error {
	if courseIdx < 0 || courseIdx >= len(data.Courses) {
		return errors.Wrapf(ErrCourseNotFound, "course index %d", courseIdx)
	}
	course := &data.Courses[courseIdx]
	if chapterIdx < 0 || chapterIdx >= len(course.Chapters) {
		return errors.Wrapf(ErrChapterNotFound, "chapter index %d in %s", chapterIdx, course.ID)
	}
	ch := &course.Chapters[chapterIdx]

	phrases := make([]VocabItem, len(draft.Phrases))
	for i, it := range draft.Phrases {
		if it.Type == "" {
			it.Type = "phrase"
		}
		if it.ID == "" {
			it.ID = e.newID("n")
		}
		phrases[i] = it
	}

	color := draft.Color
	if color == "" {
		color = DefaultColor
	}

	ch.Title = draft.Title
	ch.Color = color
	ch.Tips = ParseTips(draft.Tips)
	ch.Dialogs = []Dialog{BuildDialog(e.newID("dlg_"), draft.DialogTitle, draft.LinesA, draft.LinesB)}
	if UsesVocabField(ch) {
		ch.Vocab = phrases
		ch.Items = nil
	} else {
		ch.Items = phrases
		ch.Vocab = nil
	}

	data.Revision++
	return nil
}

// AddChapter appends a starter chapter to the course and returns its index.
func (e *Editor) AddChapter(data *Data, courseIdx int) (int, error) {
	if courseIdx < 0 || courseIdx >= len(data.Courses) {
		return 0, errors.Wrapf(ErrCourseNotFound, "course index %d", courseIdx)
	}
	course := &data.Courses[courseIdx]
	course.Chapters = append(course.Chapters, Chapter{
		ID:    e.newID("custom_"),
		Title: "New Chapter",
		Color: newChapterColor,
		Tips:  []Tip{},
		Vocab: []VocabItem{
			{ID: e.newID("n"), Type: "phrase", Source: "Hola.", Target: "Hello."},
		},
		Dialogs: []Dialog{},
		Grammar: []GrammarTopic{},
	})
	data.Revision++
	return len(course.Chapters) - 1, nil
}
