package main

import (
	"context"

	"notepad/internal/app"
	notesclient "notepad/internal/client"
	"notepad/internal/config"
	"notepad/internal/logging"
	"notepad/internal/types"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	EnsureDaemon(ctx context.Context) error
	EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error
	ListNotes(ctx context.Context) ([]*types.Note, error)
	SaveNote(ctx context.Context, note *types.Note) error
	DeleteNote(ctx context.Context, id string) error
	SubscribeNotes(ctx context.Context, onChange func(types.Notes), onError func(error)) notesclient.Unsubscribe
	ShutdownDaemon(ctx context.Context) error
	Health(ctx context.Context) (*notesclient.HealthResponse, error)
	RunUI(uiConfig config.UIConfig, logger logging.Logger) error
}

type notesClientAdapter struct {
	client *notesclient.Client
}

func newNotesClient() (commandClient, error) {
	client, err := notesclient.New()
	if err != nil {
		return nil, err
	}
	return &notesClientAdapter{client: client}, nil
}

func (c *notesClientAdapter) EnsureDaemon(ctx context.Context) error {
	return c.client.EnsureDaemon(ctx)
}

func (c *notesClientAdapter) EnsureDaemonVersion(ctx context.Context, expectedVersion string, restart bool) error {
	return c.client.EnsureDaemonVersion(ctx, expectedVersion, restart)
}

func (c *notesClientAdapter) ListNotes(ctx context.Context) ([]*types.Note, error) {
	return c.client.ListNotes(ctx)
}

func (c *notesClientAdapter) SaveNote(ctx context.Context, note *types.Note) error {
	return c.client.SaveNote(ctx, note)
}

func (c *notesClientAdapter) DeleteNote(ctx context.Context, id string) error {
	return c.client.DeleteNote(ctx, id)
}

func (c *notesClientAdapter) SubscribeNotes(ctx context.Context, onChange func(types.Notes), onError func(error)) notesclient.Unsubscribe {
	return c.client.SubscribeNotes(ctx, onChange, onError)
}

func (c *notesClientAdapter) ShutdownDaemon(ctx context.Context) error {
	return c.client.ShutdownDaemon(ctx)
}

func (c *notesClientAdapter) Health(ctx context.Context) (*notesclient.HealthResponse, error) {
	return c.client.Health(ctx)
}

func (c *notesClientAdapter) RunUI(uiConfig config.UIConfig, logger logging.Logger) error {
	c.client.SetLogger(logger.With(logging.F("component", "client")))
	return app.Run(c.client, uiConfig, logger)
}
