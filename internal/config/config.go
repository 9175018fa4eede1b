package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const (
	appName  = "nightlightctl"
	fileName = "config.cfg"
)

// Loader reads a preferences file. A zero Loader reads DefaultPath().
type Loader struct {
	Path      string
	LogOutput io.Writer

	initLogOnce sync.Once
	logger      zerolog.Logger
}

// Log returns the zerolog logger, initializing it lazily if LogOutput is set.
func (l *Loader) Log() *zerolog.Logger {
	l.initLogOnce.Do(func() {
		if l.LogOutput == nil {
			l.logger = zerolog.Nop()
			return
		}
		l.logger = zerolog.New(l.LogOutput).With().Timestamp().Logger()
	})
	return &l.logger
}

// DefaultPath returns <HOME>/.config/nightlightctl/config.cfg.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("DefaultPath: failed to get home directory due to error %w", err)
	}

	return filepath.Join(home, ".config", appName, fileName), nil
}

// LoadDefault reads the preferences file from DefaultPath().
func LoadDefault() (*Preference, error) {
	return (&Loader{}).Load()
}

func (l *Loader) path() (string, error) {
	if l.Path != "" {
		return l.Path, nil
	}
	return DefaultPath()
}

// Load reads and parses the preferences file. A missing file is not an
// error: it returns nil, nil. An empty file gives an empty Preference.
func (l *Loader) Load() (*Preference, error) {
	path, err := l.path()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Log().Debug().Str("Method", "Load").Str("Path", path).Msg("no preferences file")
			return nil, nil
		}

		return nil, fmt.Errorf("Load: failed to read preferences due to error %w", err)
	}

	l.Log().Debug().Str("Method", "Load").Str("Path", path).Int("Bytes", len(b)).Msg("loaded preferences file")

	if len(b) == 0 {
		return &Preference{}, nil
	}

	return l.Parse(b), nil
}

const template = `# nightlightctl preferences
#
# Values set here are applied before the command line flags.
# Unknown keys and malformed values are ignored.

# One of: most-warm, very-warm, warm, neutral, cool, most-cool
# preset = warm

# Color temperature in Kelvin (1700-4700)
# temperature = 2900

# Turn night light on or off
# enable = true

# normal, monochrome, red_green, or a list such as "monochrome, red_green"
# mode = normal

# Text scaling factor, 1.0 is the desktop default
# font_scale = 1.0
`

// WriteTemplate creates a commented preferences file at path unless
// one already exists.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("WriteTemplate: failed to access preferences due to error %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("WriteTemplate: failed to create default path due to error %w", err)
	}

	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("WriteTemplate: failed to create preferences due to error %w", err)
	}

	return nil
}
