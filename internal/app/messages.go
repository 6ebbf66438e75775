package app

import (
	"time"

	"notepad/internal/types"
)

type notesSubscribedMsg struct {
	events *noteEvents
}

type notesSnapshotMsg struct {
	notes types.Notes
}

type notesErrorMsg struct {
	err error
}

type noteSavedMsg struct {
	note *types.Note
	err  error
}

type noteDeletedMsg struct {
	id  string
	err error
}

type confirmDeleteMsg struct {
	note *types.Note
}

type editNoteMsg struct {
	note *types.Note
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time
