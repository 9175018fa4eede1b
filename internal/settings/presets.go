package settings

import "fmt"

// Preset names a predefined night light configuration.
type Preset int

const (
	PresetMostWarm Preset = iota
	PresetVeryWarm
	PresetWarm
	PresetNeutral
	PresetCool
	PresetMostCool
)

type presetInfo struct {
	name        string
	temperature uint32
}

var presets = []presetInfo{
	PresetMostWarm: {"most-warm", 1700},
	PresetVeryWarm: {"very-warm", 2300},
	PresetWarm:     {"warm", 2900},
	PresetNeutral:  {"neutral", 3500},
	PresetCool:     {"cool", 4100},
	PresetMostCool: {"most-cool", 4700},
}

// Presets lists every preset, warmest first.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i := range presets {
		out[i] = Preset(i)
	}
	return out
}

func (p Preset) valid() bool {
	return p >= 0 && int(p) < len(presets)
}

func (p Preset) String() string {
	if !p.valid() {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presets[p].name
}

// Config returns the night light configuration for p. Every preset
// turns night light on with a manual 0-24h window, so the temperature
// takes effect right away instead of waiting for sunset.
func (p Preset) Config() NightLightConfig {
	if !p.valid() {
		return NightLightConfig{}
	}

	return NightLightConfig{
		Enabled:           true,
		Temperature:       presets[p].temperature,
		ScheduleAutomatic: false,
		ScheduleFrom:      0.0,
		ScheduleTo:        24.0,
	}
}

// Next returns the following preset, wrapping around after the last one.
func (p Preset) Next() Preset {
	if !p.valid() {
		return PresetMostWarm
	}
	return Preset((int(p) + 1) % len(presets))
}

// ParsePreset looks a preset up by its exact hyphenated name.
func ParsePreset(name string) (Preset, error) {
	for i, info := range presets {
		if info.name == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("unknown preset %q", name)
}
