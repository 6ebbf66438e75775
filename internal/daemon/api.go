package daemon

import (
	"context"
	"net/http"
	"strings"

	"notepad/internal/logging"
	"notepad/internal/types"
)

const maxNoteBodyBytes = 1 << 20

type API struct {
	Version  string
	Notes    *NoteService
	Metrics  *Metrics
	Shutdown func(context.Context) error
	Logger   logging.Logger
}

type NotesResponse struct {
	Notes []*types.Note `json:"notes"`
}

type NoteResponse struct {
	Note *types.Note `json:"note"`
}

func isFollowRequest(r *http.Request) bool {
	follow := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("follow")))
	return follow == "1" || follow == "true" || follow == "yes"
}

func (a *API) logger() logging.Logger {
	if a == nil || a.Logger == nil {
		return logging.Nop()
	}
	return a.Logger
}
