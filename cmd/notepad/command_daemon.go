package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	notesclient "notepad/internal/client"
	"notepad/internal/config"
	"notepad/internal/daemon"
	"notepad/internal/logging"
	"notepad/internal/store"
)

type DaemonCommand struct {
	stderr     io.Writer
	runDaemon  func(background bool) error
	killDaemon func() error
}

func NewDaemonCommand(stderr io.Writer, runDaemon func(background bool) error, killDaemon func() error) *DaemonCommand {
	return &DaemonCommand{
		stderr:     stderr,
		runDaemon:  runDaemon,
		killDaemon: killDaemon,
	}
}

func (c *DaemonCommand) Run(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	background := fs.Bool("background", false, "run in background (logs to file)")
	kill := fs.Bool("kill", false, "stop any running daemon and exit")
	force := fs.Bool("force", false, "stop any running daemon before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kill {
		return c.killDaemon()
	}
	if *force {
		if err := c.killDaemon(); err != nil {
			return err
		}
	}
	return c.runDaemon(*background)
}

func runDaemonProcess(background bool) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	coreCfg, err := config.LoadCoreConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := daemonLogger(background, logging.ParseLevel(coreCfg.LogLevel()))
	if err != nil {
		return err
	}
	defer closeLog()

	tokenPath, err := config.TokenPath()
	if err != nil {
		return err
	}
	token, err := daemon.LoadOrCreateToken(tokenPath)
	if err != nil {
		return err
	}

	notesPath, err := config.NotesPath()
	if err != nil {
		return err
	}
	dbPath, err := config.NotesDBPath()
	if err != nil {
		return err
	}
	notes, err := store.OpenNoteStore(store.Paths{NotesPath: notesPath, DBPath: dbPath}, coreCfg.StorageBackend())
	if err != nil {
		return err
	}
	defer notes.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeded, err := store.SeedFromFile(ctx, notes, notesPath)
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("notes_seeded", logging.F("count", seeded), logging.F("from", notesPath))
	}

	addr := coreCfg.DaemonAddress()
	logger.Info("daemon_start", logging.F("addr", addr), logging.F("backend", notes.Backend()), logging.F("pid", os.Getpid()))
	d := daemon.New(addr, token, buildVersion(), notes, logger)
	return d.Run(ctx)
}

func daemonLogger(background bool, level logging.Level) (logging.Logger, func(), error) {
	if !background {
		return logging.New(os.Stderr, level), func() {}, nil
	}
	logPath, err := config.DaemonLogPath()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFile(logPath, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closer.Close() }, nil
}

func killDaemonWithFactory(newClient clientFactory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.ShutdownDaemon(ctx); err == nil {
		return nil
	} else {
		if notesclient.IsNotFound(err) {
			return nil
		}
		if isDaemonUnavailable(err) {
			return nil
		}
	}
	resp, err := client.Health(ctx)
	if err != nil {
		if isDaemonUnavailable(err) {
			return nil
		}
		return err
	}
	if resp == nil || resp.PID <= 0 {
		return nil
	}
	return terminatePID(resp.PID)
}

func terminatePID(pid int) error {
	if pid <= 0 {
		return errors.New("invalid pid")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}

func isDaemonUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if apiErr := notesclient.AsAPIError(err); apiErr != nil && apiErr.StatusCode == http.StatusServiceUnavailable {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "connection refused")
}
