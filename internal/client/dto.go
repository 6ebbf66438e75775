package client

import "notepad/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
	PID     int    `json:"pid"`
}

type NotesResponse struct {
	Notes []*types.Note `json:"notes"`
}

type NoteResponse struct {
	Note *types.Note `json:"note"`
}
