package filestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_HandleGetFile(t *testing.T) {
	store, _ := testStoreSetup(t)
	handler := NewHandler(store)

	relPath, err := store.Save(context.Background(), SaveFileParams{
		Filename: "page.jpg",
		Size:     11,
		File:     strings.NewReader("jpg content"),
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/uploads/{name}", handler.HandleGetFile).Methods("GET")

	req := httptest.NewRequest("GET", "http://studynotes.test/"+relPath, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpg content", rec.Body.String())
}

func TestHandler_HandleGetFile_NotFound(t *testing.T) {
	store, _ := testStoreSetup(t)
	handler := NewHandler(store)

	r := mux.NewRouter()
	r.HandleFunc("/uploads/{name}", handler.HandleGetFile).Methods("GET")

	for _, name := range []string{"image-123-000000001.jpg", "sneaky..name.jpg"} {
		req := httptest.NewRequest("GET", "http://studynotes.test/uploads/"+name, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "name: %s", name)
	}
}
