package main

import (
	"context"
	"flag"
	"io"

	"notepad/internal/config"
	"notepad/internal/logging"
)

type UICommand struct {
	stderr             io.Writer
	newClient          clientFactory
	configureUILogging func() (logging.Logger, func())
	version            string
}

func NewUICommand(stderr io.Writer, newClient clientFactory, configureUILogging func() (logging.Logger, func()), version string) *UICommand {
	return &UICommand{
		stderr:             stderr,
		newClient:          newClient,
		configureUILogging: configureUILogging,
		version:            version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	restartDaemon := fs.Bool("restart-daemon", false, "restart daemon if version mismatch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.Nop()
	if c.configureUILogging != nil {
		var closeLog func()
		logger, closeLog = c.configureUILogging()
		defer closeLog()
	}

	uiConfig, err := config.LoadUIConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := client.EnsureDaemonVersion(ctx, c.version, *restartDaemon); err != nil {
		return err
	}
	logger.Info("ui_start", logging.F("version", c.version))
	return client.RunUI(uiConfig, logger)
}

// configureUILogging sends UI logs to a file so they never draw over the
// terminal UI. Failing to open it silences logging instead of aborting.
func configureUILogging() (logging.Logger, func()) {
	noop := func() {}
	coreCfg, err := config.LoadCoreConfig()
	if err != nil {
		return logging.Nop(), noop
	}
	logPath, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), noop
	}
	logger, closer, err := logging.NewFile(logPath, logging.ParseLevel(coreCfg.LogLevel()))
	if err != nil {
		return logging.Nop(), noop
	}
	return logger, func() { _ = closer.Close() }
}
