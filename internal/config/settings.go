package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultDaemonAddress = "127.0.0.1:7787"

const (
	StorageBackendBbolt = "bbolt"
	StorageBackendFile  = "file"
)

const (
	TimestampModeRelative = "relative"
	TimestampModeAbsolute = "absolute"
)

type CoreConfig struct {
	Daemon  CoreDaemonConfig  `toml:"daemon"`
	Logging CoreLoggingConfig `toml:"logging"`
	Storage CoreStorageConfig `toml:"storage"`
}

type CoreDaemonConfig struct {
	Address string `toml:"address"`
}

type CoreLoggingConfig struct {
	Level string `toml:"level"`
}

type CoreStorageConfig struct {
	Backend string `toml:"backend"`
}

type UIConfig struct {
	Notes UINotesConfig `toml:"notes"`
}

type UINotesConfig struct {
	TimestampMode string `toml:"timestamp_mode"`
	ConfirmDelete *bool  `toml:"confirm_delete"`
	Markdown      *bool  `toml:"markdown"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Daemon: CoreDaemonConfig{
			Address: defaultDaemonAddress,
		},
		Logging: CoreLoggingConfig{
			Level: "info",
		},
		Storage: CoreStorageConfig{
			Backend: StorageBackendBbolt,
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return loadCoreConfigFromPath(path)
}

func (c CoreConfig) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	if addr == "" {
		return defaultDaemonAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c CoreConfig) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) StorageBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Storage.Backend)) {
	case StorageBackendFile:
		return StorageBackendFile
	default:
		return StorageBackendBbolt
	}
}

func DefaultUIConfig() UIConfig {
	return UIConfig{
		Notes: UINotesConfig{
			TimestampMode: TimestampModeRelative,
		},
	}
}

func LoadUIConfig() (UIConfig, error) {
	path, err := UIConfigPath()
	if err != nil {
		return UIConfig{}, err
	}
	return loadUIConfigFromPath(path)
}

func (c UIConfig) TimestampMode() string {
	switch strings.ToLower(strings.TrimSpace(c.Notes.TimestampMode)) {
	case TimestampModeAbsolute, "iso":
		return TimestampModeAbsolute
	default:
		return TimestampModeRelative
	}
}

// ConfirmDelete defaults to true; a note is only removed without a prompt
// when the user opts out explicitly.
func (c UIConfig) ConfirmDelete() bool {
	if c.Notes.ConfirmDelete == nil {
		return true
	}
	return *c.Notes.ConfirmDelete
}

func (c UIConfig) MarkdownEnabled() bool {
	if c.Notes.Markdown == nil {
		return true
	}
	return *c.Notes.Markdown
}

func loadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func loadUIConfigFromPath(path string) (UIConfig, error) {
	cfg := DefaultUIConfig()
	if err := readTOML(path, &cfg); err != nil {
		return UIConfig{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
