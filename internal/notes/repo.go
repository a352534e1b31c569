package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoteNotFound = errors.New("note not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, note *Note) (*Note, error) {
	if note.Title == "" || note.AuthorName == "" || note.Paper == "" || note.ChapterID <= 0 {
		return nil, errors.New("note title, author, paper or chapter empty")
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	if note.Images == nil {
		note.Images = []string{}
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO note (title, author_name, paper, chapter_id, images, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		note.Title, note.AuthorName, note.Paper, note.ChapterID, note.Images, note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	note.ID = id
	return note, nil
}

func (r *Repo) Get(ctx context.Context, noteID int) (*Note, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, author_name, paper, chapter_id, images, created_at
			FROM note WHERE id = $1;`,
		noteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrNoteNotFound
	}

	note, err := scanNote(rows)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *Repo) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM note WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]Note, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, title, author_name, paper, chapter_id, images, created_at
			FROM note
			ORDER BY created_at DESC, id DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

func (r *Repo) ListByPaperAndChapter(ctx context.Context, paper string, chapterID int) ([]Note, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, title, author_name, paper, chapter_id, images, created_at
			FROM note
			WHERE paper = $1 AND chapter_id = $2
			ORDER BY created_at DESC, id DESC;`,
		paper, chapterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotes(rows)
}

func scanNote(rows pgx.Rows) (*Note, error) {
	var note Note
	if err := rows.Scan(
		&note.ID, &note.Title, &note.AuthorName,
		&note.Paper, &note.ChapterID, &note.Images, &note.CreatedAt,
	); err != nil {
		return nil, err
	}
	if note.Images == nil {
		note.Images = []string{}
	}
	return &note, nil
}

func collectNotes(rows pgx.Rows) ([]Note, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}

	return notes, nil
}
