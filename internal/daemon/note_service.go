package daemon

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notepad/internal/logging"
	"notepad/internal/store"
	"notepad/internal/types"
)

// NoteService owns the notes collection. Writes are serialized with the
// snapshot that follows them so subscribers observe snapshots in write order.
type NoteService struct {
	notes   store.NoteStore
	feed    *NoteFeed
	metrics *Metrics
	logger  logging.Logger
	mu      sync.Mutex
}

func NewNoteService(notes store.NoteStore, feed *NoteFeed, metrics *Metrics, logger logging.Logger) *NoteService {
	if logger == nil {
		logger = logging.Nop()
	}
	if feed == nil {
		feed = NewNoteFeed(metrics)
	}
	return &NoteService{
		notes:   notes,
		feed:    feed,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *NoteService) List(ctx context.Context) ([]*types.Note, error) {
	if s.notes == nil {
		return nil, unavailableError("notes store not available", nil)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, unavailableError("list notes", err)
	}
	return notes, nil
}

// Put creates the note with id or replaces the existing document. The body id
// may be empty; when present it must match id.
func (s *NoteService) Put(ctx context.Context, id string, note *types.Note) (*types.Note, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("note id is required", nil)
	}
	if note == nil {
		return nil, invalidError("note payload is required", nil)
	}
	if bodyID := strings.TrimSpace(note.ID); bodyID != "" && bodyID != id {
		return nil, conflictError("note id does not match path", nil)
	}
	if s.notes == nil {
		return nil, unavailableError("notes store not available", nil)
	}
	candidate := note.Clone()
	candidate.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := s.notes.Put(ctx, candidate)
	if err != nil {
		s.metrics.OperationFailed("put")
		if errors.Is(err, store.ErrNoteIDRequired) {
			return nil, invalidError(err.Error(), err)
		}
		return nil, unavailableError("save note", err)
	}
	s.metrics.NoteWritten()
	s.logger.Info("note_saved",
		logging.F("note_id", saved.ID),
		logging.F("last_updated", saved.LastUpdated),
	)
	s.publishLocked(ctx)
	return saved, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalidError("note id is required", nil)
	}
	if s.notes == nil {
		return unavailableError("notes store not available", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.notes.Delete(ctx, id); err != nil {
		s.metrics.OperationFailed("delete")
		if errors.Is(err, store.ErrNoteNotFound) {
			return notFoundError("note not found", err)
		}
		return unavailableError("delete note", err)
	}
	s.metrics.NoteDeleted()
	s.logger.Info("note_deleted", logging.F("note_id", id))
	s.publishLocked(ctx)
	return nil
}

// Subscribe returns a channel of collection snapshots starting with the
// current state. The returned cancel func is safe to call more than once.
func (s *NoteService) Subscribe(ctx context.Context) (<-chan types.NoteSnapshot, func(), error) {
	if _, ok := s.feed.Latest(); !ok {
		if _, err := s.Refresh(ctx); err != nil {
			return nil, nil, err
		}
	}
	ch, cancel := s.feed.Subscribe()
	return ch, cancel, nil
}

// Refresh reloads the collection from the store and publishes it.
func (s *NoteService) Refresh(ctx context.Context) (types.NoteSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.List(ctx)
	if err != nil {
		return types.NoteSnapshot{}, err
	}
	return s.feed.Publish(notes), nil
}

func (s *NoteService) publishLocked(ctx context.Context) {
	notes, err := s.notes.List(ctx)
	if err != nil {
		s.metrics.OperationFailed("snapshot")
		s.logger.Error("note_snapshot_failed", logging.F("error", err))
		return
	}
	s.feed.Publish(notes)
}
