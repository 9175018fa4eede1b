package config

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"nightlightctl.app/nightlightctl/internal/settings"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// rawPreference is the key = value view of the file before any value
// is interpreted. Keys we do not know about never reach it.
type rawPreference struct {
	Preset      string `mapstructure:"preset"`
	Temperature string `mapstructure:"temperature"`
	Enable      string `mapstructure:"enable"`
	Mode        string `mapstructure:"mode"`
	FontScale   string `mapstructure:"font_scale"`
}

// Parse reads preferences from b without logging.
func Parse(b []byte) *Preference {
	return (&Loader{}).Parse(b)
}

// Parse reads preferences from b. Every line stands on its own: a
// malformed value leaves its field as an earlier line set it and the
// rest of the file is still used.
func (l *Loader) Parse(b []byte) *Preference {
	p := &Preference{}

	for _, kv := range splitPairs(l.decodeText(b)) {
		raw, err := decodePair(kv)
		if err != nil {
			// Only string values go in, so this does not happen in practice.
			l.Log().Error().Str("Method", "Parse").Str("Key", kv.key).Err(err).Msg("")
			continue
		}
		if raw == (rawPreference{}) {
			l.Log().Debug().Str("Method", "Parse").Str("Key", kv.key).Msg("ignoring unknown key")
			continue
		}
		l.merge(p, raw)
	}

	return p
}

// decodePair maps a single key = value line onto rawPreference. Keys
// must match a tag exactly.
func decodePair(kv pair) (rawPreference, error) {
	raw := rawPreference{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &raw,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return raw, err
	}

	err = dec.Decode(map[string]string{kv.key: kv.value})
	return raw, err
}

// merge sets the field raw carries on p if its value parses.
func (l *Loader) merge(p *Preference, raw rawPreference) {
	if raw.Preset != "" {
		if preset, err := settings.ParsePreset(raw.Preset); err == nil {
			p.Preset = &preset
		} else {
			l.skip("preset", raw.Preset, err)
		}
	}

	if raw.Temperature != "" {
		if t, err := strconv.ParseUint(raw.Temperature, 10, 32); err == nil {
			v := uint32(t)
			p.Temperature = &v
		} else {
			l.skip("temperature", raw.Temperature, err)
		}
	}

	if raw.Enable != "" {
		switch {
		case strings.EqualFold(raw.Enable, "true"):
			v := true
			p.Enable = &v
		case strings.EqualFold(raw.Enable, "false"):
			v := false
			p.Enable = &v
		default:
			l.skip("enable", raw.Enable, nil)
		}
	}

	if raw.Mode != "" {
		if e, err := settings.ParseEffects(raw.Mode); err == nil {
			p.Mode = &e
		} else {
			l.skip("mode", raw.Mode, err)
		}
	}

	if raw.FontScale != "" {
		f, err := strconv.ParseFloat(raw.FontScale, 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			p.FontScale = &f
		} else {
			l.skip("font_scale", raw.FontScale, err)
		}
	}
}

func (l *Loader) skip(key, value string, err error) {
	l.Log().Debug().Str("Method", "Parse").Str("Key", key).Str("Value", value).Err(err).Msg("ignoring malformed value")
}

type pair struct {
	key, value string
}

// splitPairs returns the key = value lines of text in file order. Blank
// lines, # comments, lines without "=" and empty values are dropped.
func splitPairs(text string) []pair {
	var pairs []pair

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		pairs = append(pairs, pair{key: key, value: value})
	}

	return pairs
}

// decodeText returns b as UTF-8 text. Files saved in another encoding
// are detected and converted; if that fails the bytes are used as is.
func (l *Loader) decodeText(b []byte) string {
	switch {
	case bytes.HasPrefix(b, utf8BOM):
		return string(b[len(utf8BOM):])
	case bytes.HasPrefix(b, utf16LEBOM), bytes.HasPrefix(b, utf16BEBOM):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(b)
		if err != nil {
			l.Log().Debug().Str("Method", "decodeText").Err(err).Msg("UTF-16 decode failed")
			return string(b)
		}
		return string(out)
	case utf8.Valid(b):
		return string(b)
	}

	det := chardet.NewTextDetector()
	guess, err := det.DetectBest(b)
	if err != nil {
		l.Log().Debug().Str("Method", "decodeText").Err(err).Msg("charset detection failed")
		return string(b)
	}

	enc, err := htmlindex.Get(guess.Charset)
	if err != nil {
		l.Log().Debug().Str("Method", "decodeText").Str("Charset", guess.Charset).Err(err).Msg("unsupported charset")
		return string(b)
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		l.Log().Debug().Str("Method", "decodeText").Str("Charset", guess.Charset).Err(err).Msg("decode failed")
		return string(b)
	}

	l.Log().Debug().Str("Method", "decodeText").Str("Charset", guess.Charset).Msg("converted preferences to UTF-8")

	return string(out)
}
