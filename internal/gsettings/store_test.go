package gsettings_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"nightlightctl.app/nightlightctl/internal/gsettings"
	"nightlightctl.app/nightlightctl/internal/gsettings/mocks"
)

const (
	schema = "org.gnome.settings-daemon.plugins.color"
	key    = "night-light-temperature"
)

func getArgs(k string) []string {
	return []string{"gsettings", "get", schema, k}
}

func TestReadBool(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want bool
	}{
		{name: "true", out: "true\n", want: true},
		{name: "false", out: "false\n", want: false},
		{name: "padded true", out: "  true \n", want: true},
		{name: "garbage reads false", out: "maybe", want: false},
		{name: "uppercase reads false", out: "TRUE", want: false},
		{name: "empty reads false", out: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mocks.Runner{}
			r.On("Run", getArgs("night-light-enabled")).Return([]byte(tt.out), nil).Once()

			got, err := gsettings.NewStore(r).ReadBool(schema, "night-light-enabled")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			r.AssertExpectations(t)
		})
	}
}

func TestReadUint32(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    uint32
		wantErr error
	}{
		{name: "type tag", out: "uint32 3000\n", want: 3000},
		{name: "no type tag", out: "2700", want: 2700},
		{name: "tag only", out: "uint32 ", wantErr: strconv.ErrSyntax},
		{name: "empty", out: "\n", wantErr: gsettings.ErrInvalidFormat},
		{name: "not a number", out: "uint32 warm", wantErr: strconv.ErrSyntax},
		{name: "negative", out: "uint32 -1", wantErr: strconv.ErrSyntax},
		{name: "out of range", out: "uint32 4294967296", wantErr: strconv.ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mocks.Runner{}
			r.On("Run", getArgs(key)).Return([]byte(tt.out), nil).Once()

			got, err := gsettings.NewStore(r).ReadUint32(schema, key)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReadUint32ParseErrorIsNumError(t *testing.T) {
	r := &mocks.Runner{}
	r.On("Run", getArgs(key)).Return([]byte("uint32 3k"), nil).Once()

	_, err := gsettings.NewStore(r).ReadUint32(schema, key)

	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
}

func TestReadFloat64(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr error
	}{
		{name: "type tag", out: "double 18.0\n", want: 18.0},
		{name: "no type tag", out: "1.25", want: 1.25},
		{name: "integer text", out: "24", want: 24},
		{name: "tag only", out: "double", wantErr: strconv.ErrSyntax},
		{name: "empty output", out: "  \n", wantErr: gsettings.ErrInvalidFormat},
		{name: "garbage", out: "double abc", wantErr: strconv.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mocks.Runner{}
			r.On("Run", getArgs("night-light-schedule-from")).Return([]byte(tt.out), nil).Once()

			got, err := gsettings.NewStore(r).ReadFloat64(schema, "night-light-schedule-from")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestReadPropagatesCommandFailure(t *testing.T) {
	r := &mocks.Runner{}
	cerr := &gsettings.CommandError{Args: getArgs(key), ExitCode: 1, Err: errors.New("exit status 1")}
	r.On("Run", getArgs(key)).Return(nil, cerr).Once()

	_, err := gsettings.NewStore(r).ReadUint32(schema, key)
	require.ErrorIs(t, err, gsettings.ErrCommandFailed)
}

func TestWriteFormatting(t *testing.T) {
	tests := []struct {
		name  string
		write func(s *gsettings.Store) error
		value string
	}{
		{
			name:  "bool true",
			write: func(s *gsettings.Store) error { return s.WriteBool(schema, key, true) },
			value: "true",
		},
		{
			name:  "bool false",
			write: func(s *gsettings.Store) error { return s.WriteBool(schema, key, false) },
			value: "false",
		},
		{
			name:  "uint32",
			write: func(s *gsettings.Store) error { return s.WriteUint32(schema, key, 1700) },
			value: "1700",
		},
		{
			name:  "whole float",
			write: func(s *gsettings.Store) error { return s.WriteFloat64(schema, key, 24.0) },
			value: "24",
		},
		{
			name:  "fractional float",
			write: func(s *gsettings.Store) error { return s.WriteFloat64(schema, key, 1.75) },
			value: "1.75",
		},
		{
			name:  "zero float",
			write: func(s *gsettings.Store) error { return s.WriteFloat64(schema, key, 0) },
			value: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &mocks.Runner{}
			r.On("Run", []string{"gsettings", "set", schema, key, tt.value}).Return([]byte("ignored output"), nil).Once()

			require.NoError(t, tt.write(gsettings.NewStore(r)))
			r.AssertExpectations(t)
		})
	}
}

func TestWriteFailure(t *testing.T) {
	r := &mocks.Runner{}
	r.On("Run", mock.Anything).Return(nil, gsettings.ErrCommandFailed).Once()

	err := gsettings.NewStore(r).WriteUint32(schema, key, 3000)
	require.ErrorIs(t, err, gsettings.ErrCommandFailed)
}

func TestCustomTool(t *testing.T) {
	r := &mocks.Runner{}
	r.On("Run", []string{"/opt/bin/gsettings", "get", schema, key}).Return([]byte("uint32 4000"), nil).Once()

	s := gsettings.NewStore(r)
	s.Tool = "/opt/bin/gsettings"

	got, err := s.ReadUint32(schema, key)
	require.NoError(t, err)
	require.Equal(t, uint32(4000), got)
}

func TestStripTypeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "uint32 3000", want: "3000"},
		{in: "double 18.0", want: "18.0"},
		{in: "3000", want: "3000"},
		{in: " uint32 3000 \n", want: "3000"},
		{in: "uint32 ", want: "uint32"},
		{in: "uint32  3000", want: "3000"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := gsettings.StripTypeTag(tt.in); got != tt.want {
			t.Fatalf("StripTypeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
