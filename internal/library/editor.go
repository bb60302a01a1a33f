package library

import (
	"context"

	"github.com/abhisek/polyglot/internal/content"
)

// Draft loads a chapter into an editable draft.
func (l *Library) Draft(courseIdx, chapterIdx int) (content.ChapterDraft, error) {
	ch, err := l.chapterAt(courseIdx, chapterIdx)
	if err != nil {
		return content.ChapterDraft{}, err
	}
	return content.DraftFromChapter(ch), nil
}

// Editor exposes id generation and phrase list helpers for drafts.
func (l *Library) Editor() *content.Editor {
	return l.editor
}

// SaveChapter writes the draft back and persists the curriculum.
func (l *Library) SaveChapter(ctx context.Context, courseIdx, chapterIdx int, draft content.ChapterDraft) error {
	if err := l.editor.SaveChapter(l.data, courseIdx, chapterIdx, draft); err != nil {
		return err
	}
	l.put(ctx, KeyData, l.data)
	return nil
}

// AddChapter appends a starter chapter, persists, and returns its index.
func (l *Library) AddChapter(ctx context.Context, courseIdx int) (int, error) {
	idx, err := l.editor.AddChapter(l.data, courseIdx)
	if err != nil {
		return 0, err
	}
	l.put(ctx, KeyData, l.data)
	return idx, nil
}

// Locate returns the course and chapter indexes for ids.
func (l *Library) Locate(courseID, chapterID string) (courseIdx, chapterIdx int, err error) {
	for i, c := range l.data.Courses {
		if c.ID != courseID {
			continue
		}
		if chapterID == "" {
			return i, -1, nil
		}
		for j, ch := range c.Chapters {
			if ch.ID == chapterID {
				return i, j, nil
			}
		}
		return i, -1, content.ErrChapterNotFound
	}
	return -1, -1, content.ErrCourseNotFound
}

func (l *Library) chapterAt(courseIdx, chapterIdx int) (*content.Chapter, error) {
	if courseIdx < 0 || courseIdx >= len(l.data.Courses) {
		return nil, content.ErrCourseNotFound
	}
	c := &l.data.Courses[courseIdx]
	if chapterIdx < 0 || chapterIdx >= len(c.Chapters) {
		return nil, content.ErrChapterNotFound
	}
	return &c.Chapters[chapterIdx], nil
}
