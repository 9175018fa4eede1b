package gsettings

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultTool is the settings executable used when Store.Tool is empty.
const DefaultTool = "gsettings"

// Store reads and writes typed keys through the settings tool.
// It keeps no state besides its Runner: every read hits the tool.
type Store struct {
	Runner    Runner
	Tool      string
	LogOutput io.Writer

	initLogOnce sync.Once
	logger      zerolog.Logger
}

// NewStore returns a Store bound to r using the default tool.
func NewStore(r Runner) *Store {
	return &Store{
		Runner: r,
		Tool:   DefaultTool,
	}
}

// Log returns the zerolog logger, initializing it lazily if LogOutput is set.
func (s *Store) Log() *zerolog.Logger {
	s.initLogOnce.Do(func() {
		if s.LogOutput == nil {
			s.logger = zerolog.Nop()
			return
		}
		s.logger = zerolog.New(s.LogOutput).With().Timestamp().Logger()
	})
	return &s.logger
}

func (s *Store) tool() string {
	if s.Tool == "" {
		return DefaultTool
	}
	return s.Tool
}

func (s *Store) get(schema, key string) (string, error) {
	args := []string{s.tool(), "get", schema, key}

	out, err := s.Runner.Run(args)
	if err != nil {
		s.Log().Error().Str("Method", "get").Strs("Args", args).Err(err).Msg("")
		return "", fmt.Errorf("get %s %s: %w", schema, key, err)
	}

	value := strings.TrimSpace(string(out))
	s.Log().Debug().Str("Method", "get").Strs("Args", args).Str("Value", value).Msg("")

	return value, nil
}

func (s *Store) set(schema, key, value string) error {
	args := []string{s.tool(), "set", schema, key, value}

	if _, err := s.Runner.Run(args); err != nil {
		s.Log().Error().Str("Method", "set").Strs("Args", args).Err(err).Msg("")
		return fmt.Errorf("set %s %s: %w", schema, key, err)
	}

	s.Log().Debug().Str("Method", "set").Strs("Args", args).Msg("")

	return nil
}

// ReadBool reports whether the key holds exactly "true".
// Anything else, malformed output included, reads as false.
func (s *Store) ReadBool(schema, key string) (bool, error) {
	value, err := s.get(schema, key)
	if err != nil {
		return false, err
	}

	return value == "true", nil
}

// ReadUint32 reads an unsigned integer key, e.g. "uint32 3000".
func (s *Store) ReadUint32(schema, key string) (uint32, error) {
	value, err := s.getScalar(schema, key)
	if err != nil {
		return 0, err
	}

	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("get %s %s: %w", schema, key, err)
	}

	return uint32(n), nil
}

// ReadFloat64 reads a floating point key, e.g. "double 18.0" or "18.0".
func (s *Store) ReadFloat64(schema, key string) (float64, error) {
	value, err := s.getScalar(schema, key)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("get %s %s: %w", schema, key, err)
	}

	return f, nil
}

func (s *Store) getScalar(schema, key string) (string, error) {
	value, err := s.get(schema, key)
	if err != nil {
		return "", err
	}

	value = StripTypeTag(value)
	if value == "" {
		return "", fmt.Errorf("get %s %s: %w", schema, key, ErrInvalidFormat)
	}

	return value, nil
}

// WriteBool stores "true" or "false".
func (s *Store) WriteBool(schema, key string, v bool) error {
	return s.set(schema, key, strconv.FormatBool(v))
}

// WriteUint32 stores v as a plain decimal integer.
func (s *Store) WriteUint32(schema, key string, v uint32) error {
	return s.set(schema, key, strconv.FormatUint(uint64(v), 10))
}

// WriteFloat64 stores v using the shortest decimal form, so 24.0 is written as "24".
func (s *Store) WriteFloat64(schema, key string, v float64) error {
	return s.set(schema, key, FormatFloat(v))
}

// StripTypeTag drops a single leading type token such as "uint32 " from
// a trimmed value. Values without a space are returned unchanged.
func StripTypeTag(value string) string {
	value = strings.TrimSpace(value)
	if _, rest, found := strings.Cut(value, " "); found {
		return strings.TrimSpace(rest)
	}
	return value
}

// FormatFloat renders v the way WriteFloat64 sends it to the tool.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
