package daemon

import (
	"sync"
	"time"

	"notepad/internal/types"
)

const noteFeedSubscriberBuffer = 1

// NoteFeed fans collection snapshots out to live subscribers. Every snapshot
// is the full collection, so a subscriber that falls behind only needs the
// latest one: pending snapshots are replaced rather than queued.
type NoteFeed struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]chan types.NoteSnapshot
	latest  *types.NoteSnapshot
	version uint64
	closed  bool
	metrics *Metrics
	now     func() time.Time
}

func NewNoteFeed(metrics *Metrics) *NoteFeed {
	return &NoteFeed{
		subs:    map[int]chan types.NoteSnapshot{},
		metrics: metrics,
		now:     time.Now,
	}
}

// Publish records notes as the current collection state and delivers the
// resulting snapshot to every subscriber.
func (f *NoteFeed) Publish(notes []*types.Note) types.NoteSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.version++
	snapshot := types.NoteSnapshot{
		Version:   f.version,
		Documents: make([]types.NoteDocument, 0, len(notes)),
		ChangedAt: f.now().UTC(),
	}
	for _, note := range notes {
		if note == nil {
			continue
		}
		snapshot.Documents = append(snapshot.Documents, types.NoteDocument{ID: note.ID, Data: note.Clone()})
	}
	f.latest = &snapshot
	if f.closed {
		return snapshot
	}
	for _, ch := range f.subs {
		deliverLatest(ch, snapshot)
	}
	f.metrics.SnapshotPublished()
	return snapshot
}

// Subscribe registers a subscriber. When the feed already holds a snapshot it
// is queued immediately so the subscriber starts from the current state.
func (f *NoteFeed) Subscribe() (<-chan types.NoteSnapshot, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan types.NoteSnapshot, noteFeedSubscriberBuffer)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	f.nextID++
	id := f.nextID
	f.subs[id] = ch
	if f.latest != nil {
		deliverLatest(ch, *f.latest)
	}
	f.metrics.SetSubscribers(len(f.subs))

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			sub, ok := f.subs[id]
			if !ok {
				return
			}
			delete(f.subs, id)
			close(sub)
			f.metrics.SetSubscribers(len(f.subs))
		})
	}
	return ch, cancel
}

func (f *NoteFeed) Latest() (types.NoteSnapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return types.NoteSnapshot{}, false
	}
	return *f.latest, true
}

func (f *NoteFeed) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close ends every subscription; later subscribers receive a closed channel.
func (f *NoteFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
	f.metrics.SetSubscribers(0)
}

// deliverLatest must be called with the feed lock held; the feed is the only
// sender on ch.
func deliverLatest(ch chan types.NoteSnapshot, snapshot types.NoteSnapshot) {
	select {
	case ch <- snapshot:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snapshot:
	default:
	}
}
