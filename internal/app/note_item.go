package app

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"notepad/internal/logging"
	"notepad/internal/types"
)

const (
	deleteNotePrompt  = "Are you sure you want to delete this note?"
	deleteNoteFailure = "Failed to delete note."
)

type noteRenderOptions struct {
	width    int
	now      time.Time
	location *time.Location
	mode     TimestampMode
	markdown bool
	selected bool
}

// NoteItem renders one note and owns its delete lifecycle. A successful
// delete leaves the item in the deleting state; the next snapshot removes it.
type NoteItem struct {
	note     *types.Note
	deleting bool
	err      string
	onEdit   func(*types.Note) tea.Cmd
	logger   logging.Logger
}

func NewNoteItem(note *types.Note, onEdit func(*types.Note) tea.Cmd, logger logging.Logger) *NoteItem {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NoteItem{note: note.Clone(), onEdit: onEdit, logger: logger}
}

func (i *NoteItem) Note() *types.Note {
	return i.note.Clone()
}

func (i *NoteItem) ID() string {
	if i == nil || i.note == nil {
		return ""
	}
	return i.note.ID
}

func (i *NoteItem) SetNote(note *types.Note) {
	i.note = note.Clone()
}

func (i *NoteItem) Deleting() bool {
	return i.deleting
}

func (i *NoteItem) Err() string {
	return i.err
}

// CanEdit reports whether the edit action is offered and enabled.
func (i *NoteItem) CanEdit() bool {
	return i.onEdit != nil && !i.deleting
}

func (i *NoteItem) Edit() tea.Cmd {
	if !i.CanEdit() {
		return nil
	}
	return i.onEdit(i.note.Clone())
}

// RequestDelete marks the item as deleting and asks for confirmation.
func (i *NoteItem) RequestDelete() tea.Cmd {
	if i.deleting || i.note == nil {
		return nil
	}
	i.deleting = true
	note := i.note.Clone()
	return func() tea.Msg {
		return confirmDeleteMsg{note: note}
	}
}

// ResolveDelete applies the confirmation answer.
func (i *NoteItem) ResolveDelete(api NotesAPI, confirmed bool) tea.Cmd {
	if !i.deleting {
		return nil
	}
	if !confirmed {
		i.deleting = false
		return nil
	}
	return deleteNoteCmd(api, i.ID())
}

func (i *NoteItem) HandleDeleted(err error) {
	if err == nil {
		return
	}
	i.logger.Error("delete_note_failed", logging.F("note_id", i.ID()), logging.F("error", err))
	i.err = err.Error()
	i.deleting = false
}

func (i *NoteItem) View(opts noteRenderOptions) string {
	if i == nil || i.note == nil {
		return ""
	}
	cardStyle := noteCardStyle
	if opts.selected {
		cardStyle = noteCardSelectedStyle
	}
	innerWidth := max(10, opts.width-cardStyle.GetHorizontalFrameSize())

	var lines []string
	if i.err != "" {
		lines = append(lines, errorStyle.Render(deleteNoteFailure))
	}
	title := truncatePlain(i.note.Title, innerWidth)
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, noteTitleStyle.Render(title))
	if body := renderNoteContent(i.note.Content, innerWidth, opts.markdown); body != "" {
		lines = append(lines, body)
	}
	lines = append(lines, noteMetaStyle.Render(truncateToWidth(i.footer(opts), innerWidth)))
	lines = append(lines, i.actions(opts))

	return cardStyle.Width(opts.width).Render(strings.Join(lines, "\n"))
}

func (i *NoteItem) footer(opts noteRenderOptions) string {
	updated := i.note.UpdatedAt()
	date := formatNoteDate(updated, opts.location)
	if opts.mode == TimestampModeAbsolute {
		return "Last updated: " + date
	}
	now := opts.now
	if now.IsZero() {
		now = time.Now()
	}
	footer := "Last updated: " + formatTimeAgo(updated, now)
	if date != "" {
		footer += " (" + date + ")"
	}
	return footer
}

func (i *NoteItem) actions(opts noteRenderOptions) string {
	var parts []string
	if i.onEdit != nil {
		label := "[e] Edit"
		if i.deleting {
			parts = append(parts, disabledButtonStyle.Render(label))
		} else {
			parts = append(parts, editButtonStyle.Render(label))
		}
	}
	if i.deleting {
		parts = append(parts, disabledButtonStyle.Render("Deleting..."))
	} else {
		parts = append(parts, deleteButtonStyle.Render("[d] Delete"))
	}
	if opts.selected {
		parts = append(parts, helpStyle.Render("[y] Copy"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(parts, "  ")...)
}

func joinWithGap(parts []string, gap string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for idx, part := range parts {
		if idx > 0 {
			out = append(out, gap)
		}
		out = append(out, part)
	}
	return out
}
