package chapters

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/studynotes/studynotes/pkg"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paper := vars["paper"]
	chapterList, ok := ForPaper(paper)
	if !ok {
		log.Tracef("chapters requested for unknown paper: [%s]", paper)
		pkg.WriteJSONMessage(w, http.StatusNotFound, "Paper not found")
		return
	}

	pkg.WriteJSONResponse(w, http.StatusOK, chapterList)
}
