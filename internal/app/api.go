package app

import (
	"context"

	"notepad/internal/client"
	"notepad/internal/types"
)

// NotesAPI is the slice of the daemon client the UI depends on.
type NotesAPI interface {
	SaveNote(ctx context.Context, note *types.Note) error
	DeleteNote(ctx context.Context, id string) error
	SubscribeNotes(ctx context.Context, onChange func(types.Notes), onError func(error)) client.Unsubscribe
}

var _ NotesAPI = (*client.Client)(nil)
