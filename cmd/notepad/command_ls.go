package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
)

type ListCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewListCommand(stdout, stderr io.Writer, newClient clientFactory) *ListCommand {
	return &ListCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *ListCommand) Run(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print notes as JSON")
	if err := fs.Parse(args); err != nil {
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
	notes, err := client.ListNotes(ctx)
	if err != nil {
		return err
	}

	if *asJSON {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(notes)
	}
	printNotes(c.stdout, notes)
	return nil
}
