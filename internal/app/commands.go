package app

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"notepad/internal/client"
	"notepad/internal/types"
)

const (
	noteWriteTimeout = 6 * time.Second
	tickInterval     = 30 * time.Second
)

var errNotesAPIUnavailable = errors.New("notes api not configured")

// noteEvents bridges subscription callbacks into the update loop. It holds at
// most one pending message; a newer message replaces an unread one since
// every snapshot carries the whole collection.
type noteEvents struct {
	mu          sync.Mutex
	ch          chan tea.Msg
	closed      bool
	unsubscribe client.Unsubscribe
}

func newNoteEvents() *noteEvents {
	return &noteEvents{ch: make(chan tea.Msg, 1)}
}

func (e *noteEvents) offer(msg tea.Msg) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	select {
	case e.ch <- msg:
		return
	default:
	}
	select {
	case <-e.ch:
	default:
	}
	e.ch <- msg
}

// close unsubscribes and releases any pending wait command.
func (e *noteEvents) close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		close(e.ch)
	}
}

func subscribeNotesCmd(api NotesAPI) tea.Cmd {
	return func() tea.Msg {
		if api == nil {
			return notesErrorMsg{err: errNotesAPIUnavailable}
		}
		events := newNoteEvents()
		unsubscribe := api.SubscribeNotes(context.Background(), func(notes types.Notes) {
			events.offer(notesSnapshotMsg{notes: notes})
		}, func(err error) {
			events.offer(notesErrorMsg{err: err})
		})
		events.mu.Lock()
		events.unsubscribe = unsubscribe
		events.mu.Unlock()
		return notesSubscribedMsg{events: events}
	}
}

func waitForNotesCmd(events *noteEvents) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-events.ch
		if !ok {
			return nil
		}
		return msg
	}
}

func saveNoteCmd(api NotesAPI, note *types.Note) tea.Cmd {
	return func() tea.Msg {
		if api == nil {
			return noteSavedMsg{note: note, err: errNotesAPIUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), noteWriteTimeout)
		defer cancel()
		err := api.SaveNote(ctx, note)
		return noteSavedMsg{note: note, err: err}
	}
}

func deleteNoteCmd(api NotesAPI, id string) tea.Cmd {
	return func() tea.Msg {
		if api == nil {
			return noteDeletedMsg{id: id, err: errNotesAPIUnavailable}
		}
		ctx, cancel := context.WithTimeout(context.Background(), noteWriteTimeout)
		defer cancel()
		err := api.DeleteNote(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
