package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"notepad/internal/logging"
	"notepad/internal/types"
)

// Unsubscribe stops a live subscription. It is safe to call more than once and
// returns after the stream goroutine has exited, so it must not be called from
// inside the subscription's own callbacks.
type Unsubscribe func()

var errNoteStreamClosed = errors.New("note stream closed by daemon")

// TransformSnapshot keys every document's data by its document id.
func TransformSnapshot(snapshot types.NoteSnapshot) types.Notes {
	notes := make(types.Notes, len(snapshot.Documents))
	for _, doc := range snapshot.Documents {
		if doc.ID == "" {
			continue
		}
		note := doc.Data.Clone()
		if note == nil {
			note = &types.Note{}
		}
		note.ID = doc.ID
		notes[doc.ID] = note
	}
	return notes
}

// SubscribeNotes follows the notes collection. onChange receives the current
// collection as soon as the stream opens and again after every change. onError
// (optional) receives connection, status and stream failures; the
// subscription ends after reporting one.
func (c *Client) SubscribeNotes(ctx context.Context, onChange func(types.Notes), onError func(error)) Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	var stopped atomic.Bool

	reportError := func(err error) {
		if err == nil || stopped.Load() || ctx.Err() != nil {
			return
		}
		c.logger.Warn("note_stream_error", logging.F("error", err))
		if onError != nil {
			onError(err)
		}
	}
	deliver := func(notes types.Notes) {
		if stopped.Load() || onChange == nil {
			return
		}
		onChange(notes)
	}

	go func() {
		defer close(done)
		body, err := c.openNoteStream(ctx)
		if err != nil {
			reportError(err)
			return
		}
		defer body.Close()
		c.logger.Debug("note_stream_open", logging.F("base_url", c.baseURL))
		err = readSnapshotStream(body, func(snapshot types.NoteSnapshot) {
			deliver(TransformSnapshot(snapshot))
		})
		if err == nil {
			err = errNoteStreamClosed
		}
		reportError(err)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			cancel()
			<-done
			c.logger.Debug("note_stream_closed")
		})
	}
}

func (c *Client) openNoteStream(ctx context.Context) (io.ReadCloser, error) {
	if err := c.ensureToken(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/notes?follow=1", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")

	transport := http.DefaultTransport
	if c.http != nil && c.http.Transport != nil {
		transport = c.http.Transport
	}
	// The shared client carries a request timeout that would cut the stream.
	httpClient := &http.Client{Transport: transport}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp.Body, nil
}

// readSnapshotStream decodes SSE data frames until the stream ends. It returns
// nil on a clean EOF.
func readSnapshotStream(r io.Reader, onSnapshot func(types.NoteSnapshot)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(dataLines) == 0 {
				continue
			}
			payload := strings.Join(dataLines, "\n")
			dataLines = dataLines[:0]
			var snapshot types.NoteSnapshot
			if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
				return err
			}
			onSnapshot(snapshot)
			continue
		}
		if strings.HasPrefix(line, "data:") {
			dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
		}
	}
	return scanner.Err()
}
