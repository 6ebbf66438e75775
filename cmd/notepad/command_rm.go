package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

type RemoveCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewRemoveCommand(stdout, stderr io.Writer, newClient clientFactory) *RemoveCommand {
	return &RemoveCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *RemoveCommand) Run(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("rm requires a note id")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}
	for _, id := range fs.Args() {
		if err := client.DeleteNote(ctx, id); err != nil {
			return err
		}
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}
