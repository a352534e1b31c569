package notes

import (
	"context"
	"sort"
)

type repoMock struct {
	nextID int
	notes  map[int]*Note
}

func NewMockNotesRepo() *repoMock {
	return &repoMock{
		nextID: 1,
		notes:  make(map[int]*Note),
	}
}

func (r *repoMock) Add(_ context.Context, note *Note) (*Note, error) {
	note.ID = r.nextID
	r.nextID++
	r.notes[note.ID] = note
	return note, nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if _, ok := r.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *repoMock) List(context.Context) ([]Note, error) {
	var noteList []Note
	for _, n := range r.notes {
		noteList = append(noteList, *n)
	}
	sortNewestFirst(noteList)
	return noteList, nil
}

func (r *repoMock) ListByPaperAndChapter(_ context.Context, paper string, chapterID int) ([]Note, error) {
	var noteList []Note
	for _, n := range r.notes {
		if n.Paper == paper && n.ChapterID == chapterID {
			noteList = append(noteList, *n)
		}
	}
	sortNewestFirst(noteList)
	return noteList, nil
}

func sortNewestFirst(noteList []Note) {
	sort.Slice(noteList, func(i, j int) bool {
		if noteList[i].CreatedAt.Equal(noteList[j].CreatedAt) {
			return noteList[i].ID > noteList[j].ID
		}
		return noteList[i].CreatedAt.After(noteList[j].CreatedAt)
	})
}
