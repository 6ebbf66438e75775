package daemon

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tokenBytes = 32

// LoadOrCreateToken returns the shared secret stored at tokenPath, writing a
// fresh one (mode 0600) when the file is missing or blank.
func LoadOrCreateToken(tokenPath string) (string, error) {
	if strings.TrimSpace(tokenPath) == "" {
		return "", errors.New("token path is required")
	}
	token, err := readToken(tokenPath)
	switch {
	case err == nil && token != "":
		_ = os.Chmod(tokenPath, 0o600)
		return token, nil
	case err != nil && !os.IsNotExist(err):
		return "", err
	}

	token, err = generateToken()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(tokenPath), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(tokenPath, []byte(token+"\n"), 0o600); err != nil {
		return "", err
	}
	_ = os.Chmod(tokenPath, 0o600)
	return token, nil
}

func readToken(tokenPath string) (string, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
