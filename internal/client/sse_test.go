package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"notepad/internal/types"
)

func TestTransformSnapshotKeysByDocumentID(t *testing.T) {
	notes := TransformSnapshot(types.NoteSnapshot{Documents: []types.NoteDocument{
		{ID: "a", Data: &types.Note{ID: "stale", Title: "A", LastUpdated: 1}},
		{ID: "b", Data: &types.Note{Title: "B"}},
		{ID: "c"},
		{Data: &types.Note{ID: "orphan"}},
	}})
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if notes["a"].ID != "a" || notes["a"].Title != "A" {
		t.Fatalf("expected document id to win, got %#v", notes["a"])
	}
	if notes["c"] == nil || notes["c"].ID != "c" {
		t.Fatalf("expected empty document to map to blank note, got %#v", notes["c"])
	}
}

func TestTransformSnapshotEmpty(t *testing.T) {
	notes := TransformSnapshot(types.NoteSnapshot{})
	if notes == nil || len(notes) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", notes)
	}
}

func TestReadSnapshotStreamParsesFrames(t *testing.T) {
	stream := ":\n\n" +
		"data: {\"version\":1,\"documents\":[]}\n\n" +
		"data: {\"version\":2,\n" +
		"data: \"documents\":[{\"id\":\"a\",\"data\":{\"title\":\"A\"}}]}\n\n"
	var versions []uint64
	err := readSnapshotStream(strings.NewReader(stream), func(snapshot types.NoteSnapshot) {
		versions = append(versions, snapshot.Version)
	})
	if err != nil {
		t.Fatalf("readSnapshotStream: %v", err)
	}
	if len(versions) != 2 || versions[0] != 1 || versions[1] != 2 {
		t.Fatalf("unexpected versions %v", versions)
	}
}

func TestReadSnapshotStreamRejectsBadJSON(t *testing.T) {
	err := readSnapshotStream(strings.NewReader("data: {oops\n\n"), func(types.NoteSnapshot) {})
	if err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSubscribeNotesDeliversAndUnsubscribes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("follow") != "1" {
			t.Errorf("expected follow request, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = fmt.Fprint(w, ":\n\n")
		_, _ = fmt.Fprint(w, "data: {\"version\":1,\"documents\":[{\"id\":\"n1\",\"data\":{\"title\":\"Hi\",\"lastUpdated\":5}}]}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	got := make(chan types.Notes, 4)
	errs := make(chan error, 4)
	c := NewWithBaseURL(server.URL, "token")
	unsubscribe := c.SubscribeNotes(context.Background(), func(notes types.Notes) {
		got <- notes
	}, func(err error) {
		errs <- err
	})

	select {
	case notes := <-got:
		if notes["n1"] == nil || notes["n1"].Title != "Hi" || notes["n1"].LastUpdated != 5 {
			t.Fatalf("unexpected notes %#v", notes)
		}
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for snapshot")
	}

	unsubscribe()
	unsubscribe()
	select {
	case err := <-errs:
		t.Fatalf("expected no error after unsubscribe, got %v", err)
	default:
	}
}

func TestSubscribeNotesReportsStatusError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer server.Close()

	errs := make(chan error, 1)
	unsubscribe := NewWithBaseURL(server.URL, "bad").SubscribeNotes(context.Background(), func(types.Notes) {
		t.Errorf("unexpected snapshot")
	}, func(err error) {
		errs <- err
	})
	defer unsubscribe()

	select {
	case err := <-errs:
		apiErr := AsAPIError(err)
		if apiErr == nil || apiErr.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401 api error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for error")
	}
}

func TestSubscribeNotesReportsClosedStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, "data: {\"version\":1,\"documents\":[]}\n\n")
	}))
	defer server.Close()

	errs := make(chan error, 1)
	unsubscribe := NewWithBaseURL(server.URL, "token").SubscribeNotes(context.Background(), nil, func(err error) {
		errs <- err
	})
	defer unsubscribe()

	select {
	case err := <-errs:
		if !errors.Is(err, errNoteStreamClosed) {
			t.Fatalf("expected closed stream error, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for error")
	}
}

func TestSubscribeNotesWithoutErrorHandler(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			},
		},
		{
			name: "stream closed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				_, _ = fmt.Fprint(w, ":\n\n")
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

			served := make(chan struct{}, 1)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tc.handler(w, r)
				served <- struct{}{}
			}))
			defer server.Close()

			var changes atomic.Int32
			unsubscribe := NewWithBaseURL(server.URL, "token").SubscribeNotes(context.Background(), func(types.Notes) {
				changes.Add(1)
			}, nil)

			select {
			case <-served:
			case <-time.After(5 * time.Second):
				t.Fatalf("timed out waiting for stream request")
			}

			done := make(chan struct{})
			go func() {
				unsubscribe()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatalf("unsubscribe did not return")
			}
			if got := changes.Load(); got != 0 {
				t.Fatalf("expected no snapshots, got %d", got)
			}
		})
	}
}
