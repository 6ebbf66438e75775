package store

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"

	"notepad/internal/types"
)

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrNoteIDRequired = errors.New("note id is required")
)

const noteSchemaVersion = 1

type NoteStore interface {
	List(ctx context.Context) ([]*types.Note, error)
	Get(ctx context.Context, id string) (*types.Note, bool, error)
	// Put creates the note or replaces the stored document with the same id.
	Put(ctx context.Context, note *types.Note) (*types.Note, error)
	Delete(ctx context.Context, id string) error
	Backend() string
	Close() error
}

type FileNoteStore struct {
	path string
	mu   sync.Mutex
}

type noteFile struct {
	Version int           `json:"version"`
	Notes   []*types.Note `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path}
}

func (s *FileNoteStore) Backend() string {
	return BackendFile
}

func (s *FileNoteStore) Close() error {
	return nil
}

func (s *FileNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]*types.Note, 0, len(file.Notes))
	for _, note := range file.Notes {
		if note == nil {
			continue
		}
		out = append(out, note.Clone())
	}
	sortNotesNewestFirst(out)
	return out, nil
}

func (s *FileNoteStore) Get(ctx context.Context, id string) (*types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, false, err
	}
	for _, note := range file.Notes {
		if note != nil && note.ID == id {
			return note.Clone(), true, nil
		}
	}
	return nil, false, nil
}

func (s *FileNoteStore) Put(ctx context.Context, note *types.Note) (*types.Note, error) {
	normalized, err := normalizeNote(note)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, existing := range file.Notes {
		if existing != nil && existing.ID == normalized.ID {
			file.Notes[i] = normalized
			replaced = true
			break
		}
	}
	if !replaced {
		file.Notes = append(file.Notes, normalized)
	}
	if err := s.save(file); err != nil {
		return nil, err
	}
	return normalized.Clone(), nil
}

func (s *FileNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	filtered := file.Notes[:0]
	found := false
	for _, note := range file.Notes {
		if note != nil && note.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, note)
	}
	if !found {
		return ErrNoteNotFound
	}
	file.Notes = filtered
	return s.save(file)
}

func (s *FileNoteStore) load() (*noteFile, error) {
	file := newNoteFile()
	if err := readJSON(s.path, file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return newNoteFile(), nil
		}
		return nil, err
	}
	if file.Version == 0 {
		file.Version = noteSchemaVersion
	}
	if file.Notes == nil {
		file.Notes = []*types.Note{}
	}
	return file, nil
}

func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	return writeJSONAtomic(s.path, file)
}

func newNoteFile() *noteFile {
	return &noteFile{Version: noteSchemaVersion, Notes: []*types.Note{}}
}

func normalizeNote(note *types.Note) (*types.Note, error) {
	if note == nil {
		return nil, errors.New("note is required")
	}
	normalized := note.Clone()
	normalized.ID = strings.TrimSpace(normalized.ID)
	if normalized.ID == "" {
		return nil, ErrNoteIDRequired
	}
	if normalized.LastUpdated <= 0 {
		normalized.LastUpdated = types.NowMillis()
	}
	return normalized, nil
}

func sortNotesNewestFirst(notes []*types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].LastUpdated == notes[j].LastUpdated {
			return notes[i].ID < notes[j].ID
		}
		return notes[i].LastUpdated > notes[j].LastUpdated
	})
}
