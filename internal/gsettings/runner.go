package gsettings

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// maxOutputBytes bounds how much stdout a single call may return.
	maxOutputBytes = 4096
	maxStderrBytes = 512
	maxArgs        = 8
	maxArgBytes    = 1024
)

// Runner runs an external program and returns its standard output.
// args[0] is the executable, the rest are its arguments.
type Runner interface {
	Run(args []string) ([]byte, error)
}

// CommandError is returned when the external tool exits non-zero,
// is killed by a signal or cannot be started at all.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %q", ErrCommandFailed, strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

// ExecRunner is the Runner backed by os/exec.
type ExecRunner struct{}

// Run - Spawn the command and wait for it to exit.
func (ExecRunner) Run(args []string) ([]byte, error) {
	if err := checkArgs(args); err != nil {
		return nil, err
	}

	cmd := exec.Command(args[0], args[1:]...)

	stdout := &limitedBuffer{max: maxOutputBytes}
	stderr := &limitedBuffer{max: maxStderrBytes}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		cerr := &CommandError{
			Args:     args,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode is -1 when the process was terminated by a signal.
			cerr.ExitCode = exitErr.ExitCode()
		}

		return nil, cerr
	}

	return stdout.Bytes(), nil
}

func checkArgs(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: empty command", ErrArgumentOverflow)
	}

	if len(args) > maxArgs {
		return fmt.Errorf("%w: %d arguments, limit is %d", ErrArgumentOverflow, len(args), maxArgs)
	}

	var total int
	for _, a := range args {
		total += len(a)
	}

	if total > maxArgBytes {
		return fmt.Errorf("%w: %d argument bytes, limit is %d", ErrArgumentOverflow, total, maxArgBytes)
	}

	return nil
}

// limitedBuffer keeps the first max bytes written to it and silently
// drops the rest, so a chatty child never blocks on a full pipe.
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (l *limitedBuffer) Write(p []byte) (int, error) {
	if room := l.max - l.buf.Len(); room > 0 {
		if len(p) > room {
			l.buf.Write(p[:room])
		} else {
			l.buf.Write(p)
		}
	}

	return len(p), nil
}

func (l *limitedBuffer) Bytes() []byte {
	return l.buf.Bytes()
}

func (l *limitedBuffer) String() string {
	return l.buf.String()
}
