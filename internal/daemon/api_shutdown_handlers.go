package daemon

import (
	"context"
	"net/http"
	"time"
)

func (a *API) ShutdownDaemon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if a.Shutdown == nil {
		writeError(w, http.StatusInternalServerError, "shutdown not available")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	a.logger().Info("shutdown_requested")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Shutdown(ctx)
	}()
}
