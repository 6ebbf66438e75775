package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	notesclient "notepad/internal/client"
	"notepad/internal/config"
	"notepad/internal/logging"
	"notepad/internal/types"
)

func TestDaemonCommandKillFlag(t *testing.T) {
	var calls []string
	cmd := NewDaemonCommand(
		&bytes.Buffer{},
		func(background bool) error {
			calls = append(calls, "run")
			if background {
				calls = append(calls, "background")
			}
			return nil
		},
		func() error {
			calls = append(calls, "kill")
			return nil
		},
	)

	if err := cmd.Run([]string{"--kill"}); err != nil {
		t.Fatalf("expected kill run to succeed, got err=%v", err)
	}
	if strings.Join(calls, ",") != "kill" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestDaemonCommandForceKillsThenRuns(t *testing.T) {
	var calls []string
	cmd := NewDaemonCommand(
		&bytes.Buffer{},
		func(background bool) error {
			calls = append(calls, "run")
			if background {
				calls = append(calls, "background")
			}
			return nil
		},
		func() error {
			calls = append(calls, "kill")
			return nil
		},
	)

	if err := cmd.Run([]string{"--force", "--background"}); err != nil {
		t.Fatalf("expected daemon run to succeed, got err=%v", err)
	}
	if strings.Join(calls, ",") != "kill,run,background" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

func TestListCommandPrintsNotes(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		notesResp: []*types.Note{
			{ID: "n1", Title: "Groceries", Content: "milk", LastUpdated: 2_000},
			{ID: "n2", Title: "multi\nline title", Content: "x", LastUpdated: 1_000},
		},
	}
	cmd := NewListCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	if fake.ensureDaemonCalls != 1 || fake.listNotesCalls != 1 {
		t.Fatalf("unexpected calls: ensure=%d list=%d", fake.ensureDaemonCalls, fake.listNotesCalls)
	}
	out := stdout.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "UPDATED") || !strings.Contains(out, "TITLE") {
		t.Fatalf("expected header in output, got %q", out)
	}
	if !strings.Contains(out, "Groceries") || !strings.Contains(out, "multi line title") {
		t.Fatalf("expected note rows in output, got %q", out)
	}
}

func TestListCommandWritesJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		notesResp: []*types.Note{{ID: "n1", Title: "Groceries", Content: "milk", LastUpdated: 2_000}},
	}
	cmd := NewListCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--json"}); err != nil {
		t.Fatalf("expected ls to succeed, got err=%v", err)
	}
	var notes []types.Note
	if err := json.Unmarshal(stdout.Bytes(), &notes); err != nil {
		t.Fatalf("expected valid json output, got err=%v, raw=%q", err, stdout.String())
	}
	if len(notes) != 1 || notes[0].LastUpdated != 2_000 {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestSaveCommandCreatesNote(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{}
	cmd := NewSaveCommand(strings.NewReader(""), stdout, &bytes.Buffer{}, fixedFactory(fake))
	cmd.newID = func() string { return "generated" }
	cmd.now = func() int64 { return 42 }

	if err := cmd.Run([]string{"--title", "Groceries", "--content", "milk"}); err != nil {
		t.Fatalf("expected save to succeed, got err=%v", err)
	}
	if len(fake.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(fake.saved))
	}
	note := fake.saved[0]
	if note.ID != "generated" || note.Title != "Groceries" || note.Content != "milk" || note.LastUpdated != 42 {
		t.Fatalf("unexpected saved note: %+v", note)
	}
	if got := stdout.String(); got != "generated\n" {
		t.Fatalf("unexpected stdout: %q", got)
	}
}

func TestSaveCommandReadsContentFromStdin(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewSaveCommand(strings.NewReader("line one\nline two\n"), &bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"--id", "n1", "--title", "Draft", "--content", "-"}); err != nil {
		t.Fatalf("expected save to succeed, got err=%v", err)
	}
	if len(fake.saved) != 1 || fake.saved[0].ID != "n1" || fake.saved[0].Content != "line one\nline two" {
		t.Fatalf("unexpected saved notes: %+v", fake.saved)
	}
}

func TestSaveCommandRequiresTitleAndContent(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewSaveCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))

	err := cmd.Run([]string{"--title", "Draft"})
	if err == nil || !strings.Contains(err.Error(), "title and content are required") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fake.ensureDaemonCalls != 0 || len(fake.saved) != 0 {
		t.Fatalf("expected no daemon contact on validation failure")
	}
}

func TestSaveCommandRejectsSlashInID(t *testing.T) {
	fake := &fakeCommandClient{}
	cmd := NewSaveCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))

	err := cmd.Run([]string{"--id", "a/b", "--title", "Draft", "--content", "body"})
	if !errors.Is(err, notesclient.ErrNoteIDSlash) {
		t.Fatalf("expected slash error, got %v", err)
	}
	if fake.ensureDaemonCalls != 0 || len(fake.saved) != 0 {
		t.Fatalf("expected no daemon contact for an invalid id")
	}
}

func TestRemoveCommandDeletesEachID(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{}
	cmd := NewRemoveCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	if err := cmd.Run([]string{"n1", "n2"}); err != nil {
		t.Fatalf("expected rm to succeed, got err=%v", err)
	}
	if strings.Join(fake.deleted, ",") != "n1,n2" {
		t.Fatalf("unexpected deletes: %v", fake.deleted)
	}
	if stdout.String() != "ok\n" {
		t.Fatalf("unexpected stdout: %q", stdout.String())
	}
}

func TestRemoveCommandRequiresID(t *testing.T) {
	cmd := NewRemoveCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(&fakeCommandClient{}))
	err := cmd.Run(nil)
	if err == nil || !strings.Contains(err.Error(), "requires a note id") {
		t.Fatalf("expected id validation error, got %v", err)
	}
}

func TestRemoveCommandPropagatesDeleteError(t *testing.T) {
	fake := &fakeCommandClient{deleteErr: errors.New("boom")}
	cmd := NewRemoveCommand(&bytes.Buffer{}, &bytes.Buffer{}, fixedFactory(fake))
	if err := cmd.Run([]string{"n1"}); err == nil || err.Error() != "boom" {
		t.Fatalf("expected delete error, got %v", err)
	}
}

func TestWatchCommandPrintsSnapshotsUntilStreamFails(t *testing.T) {
	stdout := &bytes.Buffer{}
	streamErr := errors.New("note stream closed by daemon")
	fake := &fakeCommandClient{
		snapshots: []types.Notes{
			{"a": {ID: "a", Title: "Older", LastUpdated: 1}, "b": {ID: "b", Title: "Newer", LastUpdated: 2}},
		},
		streamErr: streamErr,
	}
	cmd := NewWatchCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))

	err := cmd.Run(nil)
	if !errors.Is(err, streamErr) {
		t.Fatalf("expected stream error, got %v", err)
	}
	if fake.unsubscribeCalls != 1 {
		t.Fatalf("expected unsubscribe once, got %d", fake.unsubscribeCalls)
	}
	out := stdout.String()
	if strings.Index(out, "Newer") > strings.Index(out, "Older") {
		t.Fatalf("expected newest note first, got %q", out)
	}
}

func TestWatchCommandWritesJSON(t *testing.T) {
	stdout := &bytes.Buffer{}
	fake := &fakeCommandClient{
		snapshots: []types.Notes{{"a": {ID: "a", Title: "Only", LastUpdated: 1}}, {}},
		streamErr: errors.New("done"),
	}
	cmd := NewWatchCommand(stdout, &bytes.Buffer{}, fixedFactory(fake))
	_ = cmd.Run([]string{"--json"})

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per snapshot, got %q", stdout.String())
	}
	var first []types.Note
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil || len(first) != 1 || first[0].ID != "a" {
		t.Fatalf("unexpected first snapshot %q err=%v", lines[0], err)
	}
	if lines[1] != "[]" {
		t.Fatalf("expected empty collection, got %q", lines[1])
	}
}

func TestUICommandEnsuresVersionAndRunsUI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fake := &fakeCommandClient{}
	logConfigured := 0
	logClosed := 0

	cmd := NewUICommand(
		&bytes.Buffer{},
		fixedFactory(fake),
		func() (logging.Logger, func()) {
			logConfigured++
			return logging.Nop(), func() { logClosed++ }
		},
		"v-test",
	)

	if err := cmd.Run([]string{"--restart-daemon"}); err != nil {
		t.Fatalf("expected ui command to succeed, got err=%v", err)
	}
	if logConfigured != 1 || logClosed != 1 {
		t.Fatalf("expected UI logging opened and closed once, got %d/%d", logConfigured, logClosed)
	}
	if fake.ensureVersionCalls != 1 {
		t.Fatalf("expected ensure daemon version once, got %d", fake.ensureVersionCalls)
	}
	if fake.ensureVersionExpected != "v-test" || !fake.ensureVersionRestart {
		t.Fatalf("unexpected ensure version args: expected=%q restart=%v", fake.ensureVersionExpected, fake.ensureVersionRestart)
	}
	if fake.runUICalls != 1 {
		t.Fatalf("expected ui runner once, got %d", fake.runUICalls)
	}
	if !fake.runUIConfig.ConfirmDelete() {
		t.Fatalf("expected default ui config to confirm deletes")
	}
}

func TestUICommandLoadsUIConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".notepad")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	data := "[notes]\ntimestamp_mode = \"absolute\"\nconfirm_delete = false\n"
	if err := os.WriteFile(filepath.Join(dir, "ui.toml"), []byte(data), 0o600); err != nil {
		t.Fatalf("write ui config: %v", err)
	}
	fake := &fakeCommandClient{}
	cmd := NewUICommand(&bytes.Buffer{}, fixedFactory(fake), nil, "v-test")

	if err := cmd.Run(nil); err != nil {
		t.Fatalf("expected ui command to succeed, got err=%v", err)
	}
	if fake.runUIConfig.TimestampMode() != config.TimestampModeAbsolute || fake.runUIConfig.ConfirmDelete() {
		t.Fatalf("unexpected ui config: %+v", fake.runUIConfig)
	}
}

func TestConfigCommandPrintsDefaultsAsTOML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	stdout := &bytes.Buffer{}
	cmd := NewConfigCommand(stdout, &bytes.Buffer{})

	if err := cmd.Run([]string{"--default", "--scope", "core", "--format", "toml"}); err != nil {
		t.Fatalf("expected config to succeed, got err=%v", err)
	}
	var out coreConfigOutput
	if err := toml.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("expected valid toml, got err=%v raw=%q", err, stdout.String())
	}
	if out.Daemon.Address != "127.0.0.1:7787" || out.Storage.Backend != config.StorageBackendBbolt || out.Logging.Level != "info" {
		t.Fatalf("unexpected core defaults: %+v", out)
	}
}

func TestConfigCommandRejectsUnknownScope(t *testing.T) {
	cmd := NewConfigCommand(&bytes.Buffer{}, &bytes.Buffer{})
	err := cmd.Run([]string{"--scope", "providers"})
	if err == nil || !strings.Contains(err.Error(), "invalid scope") {
		t.Fatalf("expected scope error, got %v", err)
	}
}

func TestKillDaemonTreatsMissingDaemonAsStopped(t *testing.T) {
	fake := &fakeCommandClient{
		shutdownErr: errors.New("dial tcp 127.0.0.1:7787: connect: connection refused"),
	}
	if err := killDaemonWithFactory(fixedFactory(fake)); err != nil {
		t.Fatalf("expected unavailable daemon to count as stopped, got %v", err)
	}
}

func TestKillDaemonFallsBackToHealthPID(t *testing.T) {
	fake := &fakeCommandClient{
		shutdownErr: &notesclient.APIError{StatusCode: 500, Message: "boom"},
		healthResp:  &notesclient.HealthResponse{OK: true},
	}
	if err := killDaemonWithFactory(fixedFactory(fake)); err != nil {
		t.Fatalf("expected missing pid to be ignored, got %v", err)
	}
}

func TestNotesNewestFirstBreaksTiesByID(t *testing.T) {
	sorted := notesNewestFirst(types.Notes{
		"b": {ID: "b", LastUpdated: 1},
		"a": {ID: "a", LastUpdated: 1},
		"c": {ID: "c", LastUpdated: 5},
		"x": nil,
	})
	var ids []string
	for _, note := range sorted {
		ids = append(ids, note.ID)
	}
	if strings.Join(ids, ",") != "c,a,b" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

type fakeCommandClient struct {
	ensureDaemonErr error

	ensureDaemonCalls     int
	ensureVersionErr      error
	ensureVersionCalls    int
	ensureVersionExpected string
	ensureVersionRestart  bool

	listNotesErr   error
	listNotesCalls int
	notesResp      []*types.Note

	saveErr error
	saved   []*types.Note

	deleteErr error
	deleted   []string

	snapshots        []types.Notes
	streamErr        error
	unsubscribeCalls int

	shutdownErr error
	healthErr   error
	healthResp  *notesclient.HealthResponse
	runUIErr    error
	runUICalls  int
	runUIConfig config.UIConfig
}

func (f *fakeCommandClient) EnsureDaemon(context.Context) error {
	f.ensureDaemonCalls++
	return f.ensureDaemonErr
}

func (f *fakeCommandClient) EnsureDaemonVersion(_ context.Context, expectedVersion string, restart bool) error {
	f.ensureVersionCalls++
	f.ensureVersionExpected = expectedVersion
	f.ensureVersionRestart = restart
	return f.ensureVersionErr
}

func (f *fakeCommandClient) ListNotes(context.Context) ([]*types.Note, error) {
	f.listNotesCalls++
	return f.notesResp, f.listNotesErr
}

func (f *fakeCommandClient) SaveNote(_ context.Context, note *types.Note) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, note.Clone())
	return nil
}

func (f *fakeCommandClient) DeleteNote(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommandClient) SubscribeNotes(_ context.Context, onChange func(types.Notes), onError func(error)) notesclient.Unsubscribe {
	for _, snapshot := range f.snapshots {
		onChange(snapshot)
	}
	if f.streamErr != nil {
		onError(f.streamErr)
	}
	return func() { f.unsubscribeCalls++ }
}

func (f *fakeCommandClient) ShutdownDaemon(context.Context) error {
	return f.shutdownErr
}

func (f *fakeCommandClient) Health(context.Context) (*notesclient.HealthResponse, error) {
	return f.healthResp, f.healthErr
}

func (f *fakeCommandClient) RunUI(uiConfig config.UIConfig, _ logging.Logger) error {
	f.runUICalls++
	f.runUIConfig = uiConfig
	return f.runUIErr
}

func fixedFactory(client commandClient) clientFactory {
	return func() (commandClient, error) {
		return client, nil
	}
}
