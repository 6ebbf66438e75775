package daemon

import (
	"net/http"
	"os"
)

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
	PID     int    `json:"pid"`
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Version: a.Version,
		PID:     os.Getpid(),
	})
}
