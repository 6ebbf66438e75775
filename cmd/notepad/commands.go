package main

import (
	"io"
	"os"

	"notepad/internal/logging"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdin              io.Reader
	stdout             io.Writer
	stderr             io.Writer
	newClient          clientFactory
	runDaemon          func(background bool) error
	killDaemon         func() error
	configureUILogging func() (logging.Logger, func())
	version            string
}

func defaultCommandWiring(stdin io.Reader, stdout, stderr io.Writer) commandWiring {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		newClient: newNotesClient,
		runDaemon: runDaemonProcess,
		killDaemon: func() error {
			return killDaemonWithFactory(newNotesClient)
		},
		configureUILogging: configureUILogging,
		version:            buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"daemon": NewDaemonCommand(wiring.stderr, wiring.runDaemon, wiring.killDaemon),
		"config": NewConfigCommand(wiring.stdout, wiring.stderr),
		"ls":     NewListCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"save":   NewSaveCommand(wiring.stdin, wiring.stdout, wiring.stderr, wiring.newClient),
		"rm":     NewRemoveCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"watch":  NewWatchCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"ui":     NewUICommand(wiring.stderr, wiring.newClient, wiring.configureUILogging, wiring.version),
	}
}
