// Package logx sets up the application logger. The TUI owns stdout and
// stderr, so logs always go to a file; tail it in a second terminal when
// debugging.
package logx

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open creates a file-backed logger at path, or at the default state
// location when path is empty. The returned closer flushes and closes the
// log file.
func Open(path string, debug bool) (zerolog.Logger, func() error, error) {
	if path == "" {
		p, err := defaultLogPath()
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Logger()

	return log, f.Close, nil
}

// defaultLogPath resolves to $XDG_STATE_HOME/quizdeck/quizdeck.log, falling
// back to ~/.local/state.
func defaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "quizdeck", "quizdeck.log"), nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
