package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	notesclient "notepad/internal/client"
	"notepad/internal/types"
)

type SaveCommand struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	newID     func() string
	now       func() int64
}

func NewSaveCommand(stdin io.Reader, stdout, stderr io.Writer, newClient clientFactory) *SaveCommand {
	return &SaveCommand{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
		newID:     uuid.NewString,
		now:       types.NowMillis,
	}
}

func (c *SaveCommand) Run(args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	id := fs.String("id", "", "note id to update (a new id is generated when empty)")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content, or - to read it from stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body := *content
	if body == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return err
		}
		body = strings.TrimRight(string(data), "\n")
	}
	if strings.TrimSpace(*title) == "" || strings.TrimSpace(body) == "" {
		return errors.New("title and content are required")
	}

	note := &types.Note{
		ID:          strings.TrimSpace(*id),
		Title:       *title,
		Content:     body,
		LastUpdated: c.now(),
	}
	if note.ID == "" {
		note.ID = c.newID()
	}
	if err := notesclient.ValidateNoteID(note.ID); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	if err := client.SaveNote(ctx, note); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, note.ID)
	return nil
}
