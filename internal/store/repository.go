package store

import (
	"context"
	"errors"
	"strings"
)

const (
	BackendFile  = "file"
	BackendBbolt = "bbolt"
)

type Paths struct {
	NotesPath string
	DBPath    string
}

func OpenNoteStore(paths Paths, backend string) (NoteStore, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendBbolt:
		if strings.TrimSpace(paths.DBPath) == "" {
			return nil, errors.New("db path is required for bbolt notes store")
		}
		return NewBboltNoteStore(paths.DBPath)
	case BackendFile:
		if strings.TrimSpace(paths.NotesPath) == "" {
			return nil, errors.New("notes path is required for file notes store")
		}
		return NewFileNoteStore(paths.NotesPath), nil
	default:
		return nil, errors.New("unsupported notes backend: " + backend)
	}
}

// SeedFromFile copies notes from the JSON collection into dst when dst is
// empty, so switching to bbolt keeps notes written by the file backend.
func SeedFromFile(ctx context.Context, dst NoteStore, notesPath string) (int, error) {
	if dst == nil || dst.Backend() == BackendFile || strings.TrimSpace(notesPath) == "" {
		return 0, nil
	}
	current, err := dst.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(current) > 0 {
		return 0, nil
	}
	legacy, err := NewFileNoteStore(notesPath).List(ctx)
	if err != nil {
		return 0, err
	}
	for _, note := range legacy {
		if _, err := dst.Put(ctx, note); err != nil {
			return 0, err
		}
	}
	return len(legacy), nil
}
