package filestore

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/studynotes/studynotes/pkg"
)

type Handler struct {
	store *DiskStore
}

func NewHandler(store *DiskStore) *Handler {
	return &Handler{
		store: store,
	}
}

// HandleGetFile - serve a stored file back to the client
func (handler *Handler) HandleGetFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	name := vars["name"]
	if name == "" {
		http.NotFound(w, r)
		return
	}

	filePath, err := handler.store.FilePath(name)
	if err != nil {
		log.Tracef("get file [%s]: %s", name, err)
		http.NotFound(w, r)
		return
	}

	exists, err := pkg.PathExists(filePath, false)
	if err != nil || !exists {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}
