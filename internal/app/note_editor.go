package app

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"notepad/internal/logging"
	"notepad/internal/types"
)

const (
	saveNoteFailure     = "Failed to save note"
	requiredFieldsError = "Title and content are required."
	noteContentRows     = 5
)

type editorField int

const (
	editorFieldTitle editorField = iota
	editorFieldContent
	editorFieldSubmit
)

type NoteEditorOptions struct {
	OnSave func(*types.Note) tea.Cmd
	Logger logging.Logger
	Now    func() int64
	NewID  func() string
}

// NoteEditor is the create/update form. Without an initial note it edits a
// fresh blank note and resets to another one after each successful save.
type NoteEditor struct {
	api        NotesAPI
	note       types.Note
	editing    bool
	saving     bool
	err        string
	validation string
	field      editorField
	focused    bool
	title      textinput.Model
	content    textarea.Model
	onSave     func(*types.Note) tea.Cmd
	logger     logging.Logger
	now        func() int64
	newID      func() string
	width      int
}

func NewNoteEditor(api NotesAPI, initial *types.Note, opts NoteEditorOptions) *NoteEditor {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = types.NowMillis
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	title := textinput.New()
	title.Placeholder = "Enter note title"
	title.Prompt = ""

	content := textarea.New()
	content.Placeholder = "Enter note content"
	content.ShowLineNumbers = false
	content.SetHeight(noteContentRows)

	e := &NoteEditor{
		api:     api,
		title:   title,
		content: content,
		onSave:  opts.OnSave,
		logger:  logger,
		now:     now,
		newID:   newID,
	}
	e.SetWidth(60)
	e.SetInitialNote(initial)
	return e
}

// SetInitialNote switches the form to editing n, or to a fresh blank note
// when n is nil.
func (e *NoteEditor) SetInitialNote(n *types.Note) {
	if n != nil {
		e.note = *n.Clone()
		e.editing = true
	} else {
		e.note = e.blankNote()
		e.editing = false
	}
	e.validation = ""
	e.title.SetValue(e.note.Title)
	e.content.SetValue(e.note.Content)
	e.field = editorFieldTitle
	e.syncFocus()
}

func (e *NoteEditor) blankNote() types.Note {
	return types.Note{ID: e.newID(), LastUpdated: e.now()}
}

func (e *NoteEditor) Note() types.Note {
	return e.note
}

func (e *NoteEditor) Editing() bool {
	return e.editing
}

func (e *NoteEditor) Saving() bool {
	return e.saving
}

func (e *NoteEditor) Err() string {
	return e.err
}

func (e *NoteEditor) SetWidth(width int) {
	e.width = max(20, width)
	e.title.SetWidth(e.width - 2)
	e.content.SetWidth(e.width)
}

func (e *NoteEditor) Focus() tea.Cmd {
	e.focused = true
	return e.syncFocus()
}

func (e *NoteEditor) Blur() {
	e.focused = false
	e.syncFocus()
}

func (e *NoteEditor) syncFocus() tea.Cmd {
	e.title.Blur()
	e.content.Blur()
	if !e.focused || e.saving {
		return nil
	}
	switch e.field {
	case editorFieldTitle:
		return e.title.Focus()
	case editorFieldContent:
		return e.content.Focus()
	}
	return nil
}

// SubmitLabel is the text of the submit button.
func (e *NoteEditor) SubmitLabel() string {
	switch {
	case e.saving:
		return "Saving..."
	case e.editing:
		return "Update Note"
	default:
		return "Save Note"
	}
}

func (e *NoteEditor) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case noteSavedMsg:
		return e.handleSaved(msg)
	case tea.KeyPressMsg:
		if e.saving {
			return nil
		}
		switch msg.String() {
		case "ctrl+s":
			return e.Submit()
		case "tab":
			e.field = (e.field + 1) % 3
			return e.syncFocus()
		case "shift+tab":
			e.field = (e.field + 2) % 3
			return e.syncFocus()
		case "enter":
			switch e.field {
			case editorFieldTitle:
				e.field = editorFieldContent
				return e.syncFocus()
			case editorFieldSubmit:
				return e.Submit()
			}
		}
		return e.updateField(msg)
	}
	if e.saving {
		return nil
	}
	return e.updateField(msg)
}

func (e *NoteEditor) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.field {
	case editorFieldTitle:
		e.title, cmd = e.title.Update(msg)
		e.SetTitle(e.title.Value())
	case editorFieldContent:
		e.content, cmd = e.content.Update(msg)
		e.SetContent(e.content.Value())
	}
	return cmd
}

// SetTitle records a title change; any change bumps lastUpdated.
func (e *NoteEditor) SetTitle(title string) {
	if title == e.note.Title {
		return
	}
	e.note.Title = title
	e.note.LastUpdated = e.now()
	if e.title.Value() != title {
		e.title.SetValue(title)
	}
}

func (e *NoteEditor) SetContent(content string) {
	if content == e.note.Content {
		return
	}
	e.note.Content = content
	e.note.LastUpdated = e.now()
	if e.content.Value() != content {
		e.content.SetValue(content)
	}
}

func (e *NoteEditor) Submit() tea.Cmd {
	if e.saving {
		return nil
	}
	if strings.TrimSpace(e.note.Title) == "" || strings.TrimSpace(e.note.Content) == "" {
		e.validation = requiredFieldsError
		return nil
	}
	e.validation = ""
	e.saving = true
	e.syncFocus()
	note := e.note
	return saveNoteCmd(e.api, &note)
}

func (e *NoteEditor) handleSaved(msg noteSavedMsg) tea.Cmd {
	if !e.saving {
		return nil
	}
	e.saving = false
	if msg.err != nil {
		e.logger.Error("save_note_failed", logging.F("note_id", e.note.ID), logging.F("error", msg.err))
		e.err = "error in handle submit: " + msg.err.Error()
		e.syncFocus()
		return nil
	}
	e.err = ""
	var cmd tea.Cmd
	if e.onSave != nil && msg.note != nil {
		cmd = e.onSave(msg.note.Clone())
	}
	if !e.editing {
		e.SetInitialNote(nil)
	} else {
		e.syncFocus()
	}
	return cmd
}

func (e *NoteEditor) View() string {
	header := "New Note"
	if e.editing {
		header = "Edit Note"
	}
	lines := []string{headerStyle.Render(header)}
	if e.err != "" {
		lines = append(lines, errorStyle.Render(saveNoteFailure))
	}
	if e.validation != "" {
		lines = append(lines, statusErrorStyle.Render(e.validation))
	}
	lines = append(lines,
		fieldLabelStyle.Render("Title"),
		e.title.View(),
		fieldLabelStyle.Render("Content"),
		e.content.View(),
		e.submitButton(),
	)
	return strings.Join(lines, "\n")
}

func (e *NoteEditor) submitButton() string {
	label := e.SubmitLabel()
	if e.focused && e.field == editorFieldSubmit && !e.saving {
		return submitButtonStyle.Render(label)
	}
	return submitButtonIdleStyle.Render(label)
}
