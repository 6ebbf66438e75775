package daemon

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"notepad/internal/logging"
	"notepad/internal/types"
)

// ListNotes serves the collection: GET lists it, GET with follow=1 streams it.
func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	if a.Notes == nil {
		writeServiceError(w, unavailableError("notes service not available", nil))
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if isFollowRequest(r) {
		a.streamNotes(w, r)
		return
	}
	notes, err := a.Notes.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	writeJSON(w, http.StatusOK, NotesResponse{Notes: notes})
}

func (a *API) NoteByID(w http.ResponseWriter, r *http.Request) {
	if a.Notes == nil {
		writeServiceError(w, unavailableError("notes service not available", nil))
		return
	}
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/v1/notes/"))
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var note types.Note
		if err := decodeJSONBody(w, r, &note); err != nil {
			writeServiceError(w, invalidError("invalid note payload", err))
			return
		}
		saved, err := a.Notes.Put(r.Context(), id, &note)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NoteResponse{Note: saved})
	case http.MethodDelete:
		if err := a.Notes.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *API) streamNotes(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	snapshots, cancel, err := a.Notes.Subscribe(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ":\n\n")
	flusher.Flush()

	logger := a.logger()
	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				logger.Error("note_snapshot_encode_failed", logging.F("error", err))
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
