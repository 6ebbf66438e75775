package app

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"notepad/internal/types"
)

func newTestEditor(api NotesAPI, initial *types.Note, onSave func(*types.Note) tea.Cmd) (*NoteEditor, *int64) {
	clock := int64(100)
	ids := 0
	editor := NewNoteEditor(api, initial, NoteEditorOptions{
		OnSave: onSave,
		Now: func() int64 {
			clock++
			return clock
		},
		NewID: func() string {
			ids++
			return "new-" + string(rune('0'+ids))
		},
	})
	return editor, &clock
}

func TestNoteEditorLabels(t *testing.T) {
	editor, _ := newTestEditor(&fakeNotesAPI{}, nil, nil)
	if editor.Editing() || editor.SubmitLabel() != "Save Note" {
		t.Fatalf("expected create mode, label=%q", editor.SubmitLabel())
	}
	if editor.Note().ID != "new-1" {
		t.Fatalf("expected generated id, got %q", editor.Note().ID)
	}

	editor.SetInitialNote(testNote())
	if !editor.Editing() || editor.SubmitLabel() != "Update Note" {
		t.Fatalf("expected edit mode, label=%q", editor.SubmitLabel())
	}
	if !strings.Contains(xansi.Strip(editor.View()), "Edit Note") {
		t.Fatalf("expected edit header")
	}
}

func TestNoteEditorRequiresTitleAndContent(t *testing.T) {
	api := &fakeNotesAPI{}
	editor, _ := newTestEditor(api, nil, nil)
	editor.SetTitle("only title")

	if cmd := editor.Submit(); cmd != nil {
		t.Fatalf("expected no save without content")
	}
	if editor.Saving() {
		t.Fatalf("expected not saving after validation failure")
	}
	if view := xansi.Strip(editor.View()); !strings.Contains(view, requiredFieldsError) {
		t.Fatalf("expected validation message, got %q", view)
	}

	editor.SetContent("   ")
	if cmd := editor.Submit(); cmd != nil {
		t.Fatalf("expected whitespace content to be rejected")
	}

	editor.SetTitle("  ")
	editor.SetContent("body")
	if cmd := editor.Submit(); cmd != nil {
		t.Fatalf("expected whitespace title to be rejected")
	}
}

func TestNoteEditorEditsBumpLastUpdated(t *testing.T) {
	editor, clock := newTestEditor(&fakeNotesAPI{}, nil, nil)
	start := editor.Note().LastUpdated

	editor.SetTitle("t")
	if got := editor.Note().LastUpdated; got != *clock || got <= start {
		t.Fatalf("expected lastUpdated bump, start=%d got=%d", start, got)
	}
	before := editor.Note().LastUpdated
	editor.SetTitle("t")
	if editor.Note().LastUpdated != before {
		t.Fatalf("expected unchanged title to keep lastUpdated")
	}
}

func TestNoteEditorSaveCreatesAndResets(t *testing.T) {
	api := &fakeNotesAPI{}
	var saved *types.Note
	editor, _ := newTestEditor(api, nil, func(note *types.Note) tea.Cmd {
		saved = note
		return nil
	})
	editor.SetTitle("Todo")
	editor.SetContent("write tests")

	cmd := editor.Submit()
	if !editor.Saving() || editor.SubmitLabel() != "Saving..." {
		t.Fatalf("expected saving state, label=%q", editor.SubmitLabel())
	}
	if again := editor.Submit(); again != nil {
		t.Fatalf("expected submit to be ignored while saving")
	}
	if ignored := editor.Update(keyPress("x")); ignored != nil || editor.Note().Title != "Todo" {
		t.Fatalf("expected input to be ignored while saving")
	}

	editor.Update(runCmd(t, cmd))
	if editor.Saving() {
		t.Fatalf("expected saving to clear")
	}
	if len(api.saved) != 1 || api.saved[0].ID != "new-1" || api.saved[0].Title != "Todo" {
		t.Fatalf("unexpected saved notes %+v", api.saved)
	}
	if saved == nil || saved.ID != "new-1" {
		t.Fatalf("expected onSave with saved note, got %+v", saved)
	}
	note := editor.Note()
	if note.ID != "new-2" || note.Title != "" || note.Content != "" {
		t.Fatalf("expected reset to a fresh note, got %+v", note)
	}
}

func TestNoteEditorUpdateKeepsNoteLoaded(t *testing.T) {
	api := &fakeNotesAPI{}
	editor, _ := newTestEditor(api, testNote(), nil)
	editor.SetContent("milk and eggs")

	editor.Update(runCmd(t, editor.Submit()))
	if len(api.saved) != 1 || api.saved[0].ID != "n1" || api.saved[0].Content != "milk and eggs" {
		t.Fatalf("unexpected saved notes %+v", api.saved)
	}
	if !editor.Editing() || editor.Note().ID != "n1" || editor.SubmitLabel() != "Update Note" {
		t.Fatalf("expected editor to keep the updated note")
	}
}

func TestNoteEditorSaveFailure(t *testing.T) {
	api := &fakeNotesAPI{saveErr: errors.New("offline")}
	called := false
	editor, _ := newTestEditor(api, nil, func(*types.Note) tea.Cmd {
		called = true
		return nil
	})
	editor.SetTitle("Todo")
	editor.SetContent("x")

	editor.Update(runCmd(t, editor.Submit()))
	if editor.Saving() {
		t.Fatalf("expected saving to clear after failure")
	}
	if editor.Err() != "error in handle submit: offline" {
		t.Fatalf("unexpected error %q", editor.Err())
	}
	if called {
		t.Fatalf("expected onSave not to run on failure")
	}
	if editor.Note().Title != "Todo" {
		t.Fatalf("expected form to keep its values after failure")
	}
	if view := xansi.Strip(editor.View()); !strings.Contains(view, saveNoteFailure) {
		t.Fatalf("expected failure text, got %q", view)
	}

	api.saveErr = nil
	editor.Update(runCmd(t, editor.Submit()))
	if editor.Err() != "" {
		t.Fatalf("expected error to clear after a successful save")
	}
}

func TestNoteEditorKeyboardSubmit(t *testing.T) {
	api := &fakeNotesAPI{}
	editor, _ := newTestEditor(api, nil, nil)
	editor.Focus()
	editor.SetTitle("Keys")
	editor.SetContent("body")

	editor.Update(keyPress("tab"))
	editor.Update(keyPress("tab"))
	cmd := editor.Update(keyPress("enter"))
	if !editor.Saving() {
		t.Fatalf("expected enter on the submit button to save")
	}
	editor.Update(runCmd(t, cmd))
	if len(api.saved) != 1 || api.saved[0].Title != "Keys" {
		t.Fatalf("unexpected saved notes %+v", api.saved)
	}

	editor.SetTitle("Again")
	editor.SetContent("body")
	if cmd := editor.Update(keyPress("ctrl+s")); cmd == nil || !editor.Saving() {
		t.Fatalf("expected ctrl+s to save")
	}
}
