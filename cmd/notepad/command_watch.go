package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"notepad/internal/types"
)

type WatchCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewWatchCommand(stdout, stderr io.Writer, newClient clientFactory) *WatchCommand {
	return &WatchCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

// Run prints the collection on every change until interrupted or the stream
// fails.
func (c *WatchCommand) Run(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	asJSON := fs.Bool("json", false, "print one JSON array per change")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemon(ctx); err != nil {
		return err
	}

	var mu sync.Mutex
	first := true
	errCh := make(chan error, 1)
	unsubscribe := client.SubscribeNotes(ctx, func(notes types.Notes) {
		mu.Lock()
		defer mu.Unlock()
		sorted := notesNewestFirst(notes)
		if *asJSON {
			_ = json.NewEncoder(c.stdout).Encode(sorted)
			return
		}
		if !first {
			fmt.Fprintln(c.stdout)
		}
		first = false
		printNotes(c.stdout, sorted)
	}, func(err error) {
		select {
		case errCh <- err:
		default:
		}
	})
	defer unsubscribe()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
