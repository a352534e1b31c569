package notes

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/studynotes/studynotes/internal/filestore"
	"github.com/studynotes/studynotes/internal/instrumentation"
	"github.com/studynotes/studynotes/pkg"
)

const (
	maxImagesPerNote = 10
	// the whole multipart request: all images at the single-file cap, plus form fields
	maxRequestSize = maxImagesPerNote*filestore.MaxFileSize + 1<<20
)

type notesRepo interface {
	Add(ctx context.Context, note *Note) (*Note, error)
	Get(ctx context.Context, id int) (*Note, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]Note, error)
	ListByPaperAndChapter(ctx context.Context, paper string, chapterID int) ([]Note, error)
}

var (
	_ notesRepo = (*Repo)(nil)
	_ notesRepo = (*repoMock)(nil)
)

type imageStore interface {
	Save(ctx context.Context, params filestore.SaveFileParams) (string, error)
	Remove(ctx context.Context, relPath string) error
}

var _ imageStore = (*filestore.DiskStore)(nil)

type Handler struct {
	repo  notesRepo
	store imageStore
	instr *instrumentation.Instrumentation
}

func NewHandler(
	repo notesRepo,
	store imageStore,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		repo:  repo,
		store: store,
		instr: instr,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	noteList, err := handler.repo.List(r.Context())
	if err != nil {
		log.Errorf("list notes: %s", err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}

	pkg.WriteJSONResponse(w, http.StatusOK, handler.withAbsoluteImageURLs(r, noteList))
}

func (handler *Handler) HandleListByChapter(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paper := vars["paper"]
	chapterIDParam := vars["chapterId"]
	chapterID, err := strconv.Atoi(chapterIDParam)
	if err != nil {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "Invalid chapter id")
		return
	}

	noteList, err := handler.repo.ListByPaperAndChapter(r.Context(), paper, chapterID)
	if err != nil {
		log.Errorf("list notes for [%s / %d]: %s", paper, chapterID, err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to get notes")
		return
	}

	pkg.WriteJSONResponse(w, http.StatusOK, handler.withAbsoluteImageURLs(r, noteList))
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Errorf("add note failed, parse multipart form: %s", err)
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	authorName := strings.TrimSpace(r.FormValue("authorName"))
	paper := strings.TrimSpace(r.FormValue("paper"))
	chapterIDParam := r.FormValue("chapterId")
	if title == "" || authorName == "" || paper == "" || chapterIDParam == "" {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "Title, author name, paper and chapter id are required")
		return
	}
	chapterID, err := strconv.Atoi(chapterIDParam)
	if err != nil || chapterID <= 0 {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "Invalid chapter id")
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	if len(fileHeaders) == 0 {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "No images uploaded")
		return
	}
	if len(fileHeaders) > maxImagesPerNote {
		pkg.WriteJSONMessage(w, http.StatusBadRequest,
			fmt.Sprintf("Too many images, max %d allowed", maxImagesPerNote),
		)
		return
	}

	// reject oversized uploads before anything touches the disk
	for _, fileHeader := range fileHeaders {
		if fileHeader.Size > filestore.MaxFileSize {
			pkg.WriteJSONMessage(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Image %s is too large", fileHeader.Filename),
			)
			return
		}
	}

	images, err := handler.storeImages(r.Context(), fileHeaders)
	if err != nil {
		log.Errorf("add note, store images: %s", err)
		if errors.Is(err, filestore.ErrFileTooLarge) {
			pkg.WriteJSONMessage(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to store images")
		return
	}

	note := &Note{
		Title:      title,
		AuthorName: authorName,
		Paper:      paper,
		ChapterID:  chapterID,
		Images:     images,
		CreatedAt:  time.Now(),
	}

	addedNote, err := handler.repo.Add(r.Context(), note)
	if err != nil {
		log.Errorf("add note [%s] by [%s]: %s", note.Title, note.AuthorName, err)
		// a note record never happened, do not keep its images around
		handler.removeImages(r.Context(), images)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to save note")
		return
	}

	handler.instr.CounterNotesCreated.Inc()

	log.Printf("new note added: [%s] [%s]: %d", addedNote.Title, addedNote.Paper, addedNote.ID)
	pkg.WriteJSONResponse(w, http.StatusCreated, handler.noteWithAbsoluteImageURLs(r, *addedNote))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	idParam := vars["id"]
	id, err := strconv.Atoi(idParam)
	if err != nil {
		pkg.WriteJSONMessage(w, http.StatusBadRequest, "Invalid note id")
		return
	}

	note, err := handler.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			pkg.WriteJSONMessage(w, http.StatusNotFound, "Note not found")
			return
		}
		log.Errorf("delete note %d, get: %s", id, err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	// best effort, an image gone missing must not block the note removal
	handler.removeImages(r.Context(), note.Images)

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			pkg.WriteJSONMessage(w, http.StatusNotFound, "Note not found")
			return
		}
		log.Errorf("delete note %d: %s", id, err)
		pkg.WriteJSONMessage(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	handler.instr.CounterNotesDeleted.Inc()

	log.Printf("note deleted: %d [images: %d]", id, len(note.Images))
	pkg.WriteJSONMessage(w, http.StatusOK, "Note deleted successfully")
}

func (handler *Handler) storeImages(
	ctx context.Context,
	fileHeaders []*multipart.FileHeader,
) ([]string, error) {
	images := make([]string, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			handler.removeImages(ctx, images)
			return nil, fmt.Errorf("open uploaded file [%s]: %w", fileHeader.Filename, err)
		}

		imagePath, err := handler.store.Save(ctx, filestore.SaveFileParams{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			File:     file,
		})
		_ = file.Close()
		if err != nil {
			handler.removeImages(ctx, images)
			return nil, fmt.Errorf("store uploaded file [%s]: %w", fileHeader.Filename, err)
		}

		images = append(images, imagePath)
		handler.instr.CounterImagesUploaded.Inc()
	}
	return images, nil
}

func (handler *Handler) removeImages(ctx context.Context, images []string) {
	for _, image := range images {
		if err := handler.store.Remove(ctx, image); err != nil {
			log.Errorf("remove image [%s]: %s", image, err)
		}
	}
}

func (handler *Handler) withAbsoluteImageURLs(r *http.Request, noteList []Note) []Note {
	if noteList == nil {
		return []Note{}
	}
	transformed := make([]Note, 0, len(noteList))
	for _, note := range noteList {
		transformed = append(transformed, handler.noteWithAbsoluteImageURLs(r, note))
	}
	return transformed
}

func (handler *Handler) noteWithAbsoluteImageURLs(r *http.Request, note Note) Note {
	images := make([]string, 0, len(note.Images))
	for _, image := range note.Images {
		images = append(images, absoluteImageURL(r, image))
	}
	note.Images = images
	return note
}

func absoluteImageURL(r *http.Request, image string) string {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return fmt.Sprintf("%s://%s/%s", requestScheme(r), r.Host, strings.TrimPrefix(image, "/"))
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
