package daemon

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	svcErr, ok := asServiceError(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case ServiceErrorInvalid:
		status = http.StatusBadRequest
	case ServiceErrorNotFound:
		status = http.StatusNotFound
	case ServiceErrorConflict:
		status = http.StatusConflict
	case ServiceErrorUnavailable:
		status = http.StatusServiceUnavailable
	}
	message := svcErr.Message
	if message == "" {
		message = svcErr.Error()
	}
	writeJSON(w, status, errorResponse{Error: message, Kind: string(svcErr.Kind)})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNoteBodyBytes)).Decode(v)
}
