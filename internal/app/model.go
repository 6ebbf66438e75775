package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"notepad/internal/config"
	"notepad/internal/logging"
	"notepad/internal/types"
)

const (
	minListWidth      = 32
	minEditorWidth    = 36
	sideBySideWidth   = 100
	defaultViewWidth  = 80
	defaultViewHeight = 24
)

type paneFocus int

const (
	focusList paneFocus = iota
	focusEditor
)

type Options struct {
	UIConfig config.UIConfig
	Logger   logging.Logger
	Location *time.Location
	Now      func() time.Time
}

// Model composes the note list, the editor and the delete confirmation.
type Model struct {
	list          *NoteList
	editor        *NoteEditor
	confirm       *ConfirmController
	confirmDelete bool
	focus         paneFocus
	width         int
	height        int
	status        string
	statusIsError bool
	logger        logging.Logger
	mode          TimestampMode
}

func NewModel(api NotesAPI, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mode := parseTimestampMode(opts.UIConfig.TimestampMode())
	m := &Model{
		confirm:       NewConfirmController(),
		confirmDelete: opts.UIConfig.ConfirmDelete(),
		logger:        logger,
		mode:          mode,
		width:         defaultViewWidth,
		height:        defaultViewHeight,
	}
	m.list = NewNoteList(api, NoteListOptions{
		OnEditNote:    editNoteCmd,
		TimestampMode: mode,
		Markdown:      opts.UIConfig.MarkdownEnabled(),
		Location:      opts.Location,
		Logger:        logger.With(logging.F("component", "note_list")),
		Now:           now,
	})
	m.editor = NewNoteEditor(api, nil, NoteEditorOptions{
		OnSave: noteSavedStatusCmd,
		Logger: logger.With(logging.F("component", "note_editor")),
	})
	m.resize()
	return m
}

func Run(api NotesAPI, uiConfig config.UIConfig, logger logging.Logger) error {
	model := NewModel(api, Options{UIConfig: uiConfig, Logger: logger})
	defer model.list.Close()
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}

func editNoteCmd(note *types.Note) tea.Cmd {
	return func() tea.Msg {
		return editNoteMsg{note: note}
	}
}

func noteSavedStatusCmd(note *types.Note) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("saved %q", note.Title)}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), tickCmd(), tea.RequestBackgroundColor)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.BackgroundColorMsg:
		setMarkdownBackgroundDark(msg.IsDark())
		return m, nil
	case tickMsg:
		// Relative timestamps age between snapshots; the tick forces a redraw.
		if m.mode != TimestampModeRelative {
			return m, nil
		}
		return m, tickCmd()
	case statusMsg:
		m.setStatus(msg.text, msg.isError)
		return m, nil
	case editNoteMsg:
		m.editor.SetInitialNote(msg.note)
		return m, m.focusEditor()
	case confirmDeleteMsg:
		return m, m.askDelete(msg.note)
	case noteSavedMsg:
		cmd := m.editor.Update(msg)
		if msg.err != nil {
			m.setStatus(saveNoteFailure, true)
		}
		return m, cmd
	case noteDeletedMsg:
		cmd := m.list.Update(msg)
		if msg.err != nil {
			m.setStatus(deleteNoteFailure, true)
			return m, cmd
		}
		if m.editor.Editing() && m.editor.Note().ID == msg.id {
			m.editor.SetInitialNote(nil)
		}
		m.setStatus("note deleted", false)
		return m, cmd
	case notesSubscribedMsg, notesSnapshotMsg, notesErrorMsg:
		return m, m.list.Update(msg)
	case tea.MouseMsg:
		if m.confirm.IsOpen() {
			if _, choice := m.confirm.HandleMouse(msg, m.width, m.height); choice != confirmChoiceNone {
				return m, m.answerConfirm(choice)
			}
			return m, nil
		}
		if m.focus == focusEditor {
			return m, m.editor.Update(msg)
		}
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	if m.focus == focusEditor {
		return m, m.editor.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}
	if m.confirm.IsOpen() {
		if _, choice := m.confirm.HandleKey(msg); choice != confirmChoiceNone {
			return m.answerConfirm(choice)
		}
		return nil
	}
	if m.focus == focusEditor {
		if key == "esc" {
			m.focusList()
			return nil
		}
		return m.editor.Update(msg)
	}
	switch key {
	case "q":
		return m.quit()
	case "n":
		m.editor.SetInitialNote(nil)
		return m.focusEditor()
	case "tab":
		return m.focusEditor()
	}
	return m.list.Update(msg)
}

func (m *Model) quit() tea.Cmd {
	m.logger.Info("ui_exit")
	m.list.Close()
	return tea.Quit
}

func (m *Model) focusEditor() tea.Cmd {
	m.focus = focusEditor
	return m.editor.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.editor.Blur()
}

func (m *Model) askDelete(note *types.Note) tea.Cmd {
	if note == nil {
		return nil
	}
	if !m.confirmDelete {
		return m.list.ResolveDelete(note.ID, true)
	}
	m.confirm.Open(confirmRequest{
		title:        "Delete Note",
		message:      deleteNotePrompt,
		confirmLabel: "Delete",
		cancelLabel:  "Cancel",
		target:       note.ID,
	})
	return nil
}

func (m *Model) answerConfirm(choice confirmChoice) tea.Cmd {
	id := m.confirm.Target()
	m.confirm.Close()
	return m.list.ResolveDelete(id, choice == confirmChoiceConfirm)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = strings.TrimSpace(text)
	m.statusIsError = isError
}

func (m *Model) sideBySide() bool {
	return m.width >= sideBySideWidth
}

func (m *Model) resize() {
	bodyHeight := max(6, m.height-2)
	frame := paneStyle.GetHorizontalFrameSize()
	if m.sideBySide() {
		listWidth := max(minListWidth, m.width*3/5)
		editorWidth := max(minEditorWidth, m.width-listWidth)
		m.list.SetSize(listWidth-frame, bodyHeight-paneStyle.GetVerticalFrameSize())
		m.editor.SetWidth(editorWidth - frame)
		return
	}
	width := max(minListWidth, m.width) - frame
	editorHeight := noteContentRows + 8
	m.list.SetSize(width, max(3, bodyHeight-editorHeight-paneStyle.GetVerticalFrameSize()*2))
	m.editor.SetWidth(width)
}

func (m *Model) View() tea.View {
	listPane := paneStyle
	editorPane := paneStyle
	if m.focus == focusList {
		listPane = paneFocusedStyle
	} else {
		editorPane = paneFocusedStyle
	}
	listView := listPane.Render(m.list.View(m.focus == focusList))
	editorView := editorPane.Render(m.editor.View())

	var body string
	if m.sideBySide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, listView, editorView)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, editorView, listView)
	}
	content := strings.Join([]string{body, m.statusLine(), m.helpLine()}, "\n")

	if m.confirm.IsOpen() {
		block, row := m.confirm.View(m.width, m.height)
		content = overlayBlock(content, block, row)
	}

	view := tea.NewView(content)
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	return view
}

func (m *Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	text := truncateToWidth(m.status, m.width)
	if m.statusIsError {
		return statusErrorStyle.Render(text)
	}
	return statusStyle.Render(text)
}

func (m *Model) helpLine() string {
	var help string
	switch {
	case m.confirm.IsOpen():
		help = "y confirm • n/esc cancel • ←/→ choose"
	case m.focus == focusEditor:
		help = "tab next field • ctrl+s save • esc back to list • ctrl+c quit"
	default:
		help = "↑/↓ select • n new • e edit • d delete • y copy • r retry • tab editor • q quit"
	}
	return helpStyle.Render(truncateToWidth(help, m.width))
}
