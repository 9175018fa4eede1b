package settings

import (
	"fmt"
	"strings"
)

// NightLightConfig mirrors the night light keys of the color schema.
// ScheduleFrom and ScheduleTo are hours of the day and only matter
// when ScheduleAutomatic is false.
type NightLightConfig struct {
	Enabled           bool
	Temperature       uint32
	ScheduleAutomatic bool
	ScheduleFrom      float64
	ScheduleTo        float64
}

// InterfaceConfig holds the desktop interface settings we manage.
// TextScale multiplies the base font size, 1.0 being the default.
type InterfaceConfig struct {
	TextScale float64
}

// Effects is a set of color effects. The zero value is the normal mode.
type Effects uint8

const (
	EffectMonochrome Effects = 1 << iota
	EffectRedGreen

	EffectsNormal Effects = 0
)

// Has reports whether every effect of o is in e.
func (e Effects) Has(o Effects) bool {
	return e&o == o
}

func (e Effects) String() string {
	if e == EffectsNormal {
		return "normal"
	}

	var names []string
	if e.Has(EffectMonochrome) {
		names = append(names, "monochrome")
	}
	if e.Has(EffectRedGreen) {
		names = append(names, "red_green")
	}
	if rest := e &^ (EffectMonochrome | EffectRedGreen); rest != 0 {
		names = append(names, fmt.Sprintf("Effects(%d)", uint8(rest)))
	}

	return strings.Join(names, ",")
}

// ParseEffects reads a single mode name or a comma/space separated list
// of effect names. "normal" and "none" clear whatever came before them.
func ParseEffects(s string) (Effects, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(tokens) == 0 {
		return EffectsNormal, fmt.Errorf("empty effects list")
	}

	var e Effects
	for _, t := range tokens {
		switch strings.ToLower(t) {
		case "normal", "none":
			e = EffectsNormal
		case "monochrome":
			e |= EffectMonochrome
		case "red_green", "red-green":
			e |= EffectRedGreen
		default:
			return EffectsNormal, fmt.Errorf("unknown effect %q", t)
		}
	}

	return e, nil
}

// DisplayConfig is the night light plus the color effects selector.
// The intensities are kept for the effects pipeline, which does not
// exist yet; nothing reads them today.
type DisplayConfig struct {
	NightLight     NightLightConfig
	Effects        Effects
	RedIntensity   float64
	GreenIntensity float64
}

// SystemConfig is everything read or applied in one go.
type SystemConfig struct {
	Display   DisplayConfig
	Interface InterfaceConfig
}
