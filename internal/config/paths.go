package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".notepad"

// DataDir returns the base data directory for notepad.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

func dataFile(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}

// TokenPath returns the path to the daemon bearer token.
func TokenPath() (string, error) {
	return dataFile("token")
}

// NotesPath returns the path to the JSON notes collection.
func NotesPath() (string, error) {
	return dataFile("notes.json")
}

// NotesDBPath returns the path to the bbolt notes database.
func NotesDBPath() (string, error) {
	return dataFile("notes.db")
}

// CoreConfigPath returns the path to the daemon/client configuration.
func CoreConfigPath() (string, error) {
	return dataFile("config.toml")
}

// UIConfigPath returns the path to the terminal UI configuration.
func UIConfigPath() (string, error) {
	return dataFile("ui.toml")
}

// DaemonLogPath returns the log file used when the daemon runs in background.
func DaemonLogPath() (string, error) {
	return dataFile("daemon.log")
}

// UILogPath returns the log file used while the terminal UI owns the screen.
func UILogPath() (string, error) {
	return dataFile("ui.log")
}
