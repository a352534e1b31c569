package pkg

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResponse(w, "text/plain", "hello there")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, "hello there", w.Body.String())
}

func TestWriteJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONResponse(w, http.StatusCreated, map[string]int{"id": 42})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var payload map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, 42, payload["id"])
}

func TestWriteJSONMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONMessage(w, http.StatusNotFound, "Note not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var msg struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.Equal(t, "Note not found", msg.Message)
}
