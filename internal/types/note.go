package types

import "time"

// Note is a single document in the notes collection. LastUpdated is stored
// as unix milliseconds so clients in any runtime can compare it directly.
type Note struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	LastUpdated int64  `json:"lastUpdated"`
}

// Notes maps note ids to notes.
type Notes map[string]*Note

func (n *Note) UpdatedAt() time.Time {
	if n == nil || n.LastUpdated == 0 {
		return time.Time{}
	}
	return time.UnixMilli(n.LastUpdated)
}

func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	copy := *n
	return &copy
}

func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NoteDocument is one entry of a collection snapshot. The document id is
// authoritative over any id carried in Data.
type NoteDocument struct {
	ID   string `json:"id"`
	Data *Note  `json:"data"`
}

// NoteSnapshot is the full state of the notes collection after a change.
type NoteSnapshot struct {
	Version   uint64         `json:"version"`
	Documents []NoteDocument `json:"documents"`
	ChangedAt time.Time      `json:"changed_at"`
}
