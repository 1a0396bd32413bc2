package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// PathEnv overrides the config file location.
const PathEnv = "RCFIND_CONFIG"

// DotDir returns ~/.rcfind.
func DotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", errors.New("cannot determine user home directory")
	}
	return filepath.Join(home, ".rcfind"), nil
}

// Path returns the config file path, honouring RCFIND_CONFIG.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(PathEnv)); p != "" {
		return p, nil
	}
	dir, err := DotDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
