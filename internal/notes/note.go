package notes

import "time"

type Note struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"authorName"`
	Paper      string    `json:"paper"`
	ChapterID  int       `json:"chapterId"`
	Images     []string  `json:"images"`
	CreatedAt  time.Time `json:"createdAt"`
}
