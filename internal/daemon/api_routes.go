package daemon

import "net/http"

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	mux.Handle("/metrics", a.Metrics.Handler())
	mux.HandleFunc("/v1/notes", a.ListNotes)
	mux.HandleFunc("/v1/notes/", a.NoteByID)
	mux.HandleFunc("/v1/shutdown", a.ShutdownDaemon)
}

// NewHandler wraps the API routes with auth and request logging.
func NewHandler(api *API, token string) http.Handler {
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return LoggingMiddleware(api.logger(), TokenAuthMiddleware(token, mux))
}
