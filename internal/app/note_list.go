package app

import (
	"sort"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"notepad/internal/logging"
	"notepad/internal/types"
)

const (
	loadingNotesText = "Loading notes..."
	emptyNotesText   = "No notes yet. Create your first note!"
)

type NoteListOptions struct {
	OnEditNote    func(*types.Note) tea.Cmd
	TimestampMode TimestampMode
	Markdown      bool
	Location      *time.Location
	Logger        logging.Logger
	Now           func() time.Time
}

// NoteList follows the live collection and renders it newest first.
type NoteList struct {
	api        NotesAPI
	notes      types.Notes
	items      map[string]*NoteItem
	order      []string
	loading    bool
	err        string
	events     *noteEvents
	closed     bool
	cursor     int
	onEditNote func(*types.Note) tea.Cmd
	mode       TimestampMode
	markdown   bool
	location   *time.Location
	logger     logging.Logger
	now        func() time.Time
	viewport   viewport.Model
	width      int
	height     int
}

func NewNoteList(api NotesAPI, opts NoteListOptions) *NoteList {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mode := opts.TimestampMode
	if mode == "" {
		mode = TimestampModeRelative
	}
	return &NoteList{
		api:        api,
		notes:      types.Notes{},
		items:      map[string]*NoteItem{},
		onEditNote: opts.OnEditNote,
		mode:       mode,
		markdown:   opts.Markdown,
		location:   opts.Location,
		logger:     logger,
		now:        now,
		viewport:   viewport.New(viewport.WithWidth(40), viewport.WithHeight(10)),
		width:      40,
		height:     10,
	}
}

// Init starts the subscription.
func (l *NoteList) Init() tea.Cmd {
	l.loading = true
	return subscribeNotesCmd(l.api)
}

// Close ends the subscription. Later snapshots are ignored.
func (l *NoteList) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.events != nil {
		l.events.close()
		l.events = nil
	}
}

func (l *NoteList) Loading() bool {
	return l.loading
}

func (l *NoteList) Err() string {
	return l.err
}

func (l *NoteList) SetSize(width, height int) {
	l.width = max(20, width)
	l.height = max(3, height)
	l.viewport.SetWidth(l.width)
	l.viewport.SetHeight(max(1, l.height-1))
}

// Sorted returns the notes newest first; ties fall back to id order.
func (l *NoteList) Sorted() []*types.Note {
	out := make([]*types.Note, 0, len(l.notes))
	for _, note := range l.notes {
		if note != nil {
			out = append(out, note)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastUpdated != out[j].LastUpdated {
			return out[i].LastUpdated > out[j].LastUpdated
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (l *NoteList) Selected() *NoteItem {
	if l.cursor < 0 || l.cursor >= len(l.order) {
		return nil
	}
	return l.items[l.order[l.cursor]]
}

func (l *NoteList) Item(id string) *NoteItem {
	return l.items[id]
}

func (l *NoteList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notesSubscribedMsg:
		if l.closed {
			msg.events.close()
			return nil
		}
		if l.events != nil {
			l.events.close()
		}
		l.events = msg.events
		return waitForNotesCmd(l.events)
	case notesSnapshotMsg:
		if l.closed {
			return nil
		}
		l.applySnapshot(msg.notes)
		l.loading = false
		return waitForNotesCmd(l.events)
	case notesErrorMsg:
		if l.closed {
			return nil
		}
		if msg.err != nil {
			l.logger.Error("notes_subscription_failed", logging.F("error", msg.err))
			l.err = msg.err.Error()
		}
		l.loading = false
		return waitForNotesCmd(l.events)
	case noteDeletedMsg:
		if item := l.items[msg.id]; item != nil {
			item.HandleDeleted(msg.err)
		}
		return nil
	case tea.KeyPressMsg:
		return l.handleKey(msg)
	}
	return nil
}

// ResolveDelete forwards a confirmation answer to the item being deleted.
func (l *NoteList) ResolveDelete(id string, confirmed bool) tea.Cmd {
	item := l.items[id]
	if item == nil {
		return nil
	}
	return item.ResolveDelete(l.api, confirmed)
}

// Retry resubscribes after a subscription error.
func (l *NoteList) Retry() tea.Cmd {
	if l.closed || l.err == "" {
		return nil
	}
	if l.events != nil {
		l.events.close()
		l.events = nil
	}
	l.err = ""
	return l.Init()
}

func (l *NoteList) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		l.moveCursor(-1)
	case "down", "j":
		l.moveCursor(1)
	case "home", "g":
		l.cursor = 0
	case "end", "G":
		l.cursor = max(0, len(l.order)-1)
	case "e", "enter":
		if item := l.Selected(); item != nil {
			return item.Edit()
		}
	case "d", "delete":
		if item := l.Selected(); item != nil {
			return item.RequestDelete()
		}
	case "y":
		if item := l.Selected(); item != nil {
			note := item.Note()
			return copyNoteCmd(note.Content, note.Title)
		}
	case "r":
		return l.Retry()
	}
	return nil
}

func (l *NoteList) moveCursor(delta int) {
	if len(l.order) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = min(max(0, l.cursor+delta), len(l.order)-1)
}

func (l *NoteList) applySnapshot(notes types.Notes) {
	selectedID := ""
	if item := l.Selected(); item != nil {
		selectedID = item.ID()
	}
	if notes == nil {
		notes = types.Notes{}
	}
	l.notes = notes

	next := make(map[string]*NoteItem, len(notes))
	sorted := l.Sorted()
	l.order = l.order[:0]
	for _, note := range sorted {
		item := l.items[note.ID]
		if item == nil {
			item = NewNoteItem(note, l.onEditNote, l.logger)
		} else {
			item.SetNote(note)
		}
		next[note.ID] = item
		l.order = append(l.order, note.ID)
	}
	l.items = next

	l.cursor = min(l.cursor, max(0, len(l.order)-1))
	for idx, id := range l.order {
		if id == selectedID {
			l.cursor = idx
			break
		}
	}
}

func (l *NoteList) View(focused bool) string {
	lines := []string{headerStyle.Render("Notes")}
	if l.err != "" {
		lines = append(lines, errorStyle.Render(truncateToWidth(l.err, l.width)))
	}
	switch {
	case l.loading:
		lines = append(lines, statusStyle.Render(loadingNotesText))
		return strings.Join(lines, "\n")
	case len(l.order) == 0:
		lines = append(lines, statusStyle.Render(emptyNotesText))
		return strings.Join(lines, "\n")
	}

	now := l.now()
	var body []string
	selectedTop, selectedBottom := 0, 0
	row := 0
	for idx, id := range l.order {
		item := l.items[id]
		if item == nil {
			continue
		}
		rendered := item.View(noteRenderOptions{
			width:    l.width,
			now:      now,
			location: l.location,
			mode:     l.mode,
			markdown: l.markdown,
			selected: focused && idx == l.cursor,
		})
		height := strings.Count(rendered, "\n") + 1
		if idx == l.cursor {
			selectedTop, selectedBottom = row, row+height
		}
		row += height
		body = append(body, rendered)
	}

	l.viewport.SetHeight(max(1, l.height-len(lines)))
	l.viewport.SetContent(strings.Join(body, "\n"))
	l.scrollTo(selectedTop, selectedBottom)
	lines = append(lines, l.viewport.View())
	return strings.Join(lines, "\n")
}

func (l *NoteList) scrollTo(top, bottom int) {
	offset := l.viewport.YOffset()
	height := l.viewport.Height()
	switch {
	case top < offset:
		offset = top
	case bottom > offset+height:
		offset = bottom - height
	}
	l.viewport.SetYOffset(max(0, offset))
}
