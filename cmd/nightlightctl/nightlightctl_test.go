package main

import (
	"bytes"
	"math"
	"testing"

	"nightlightctl.app/nightlightctl/internal/config"
	"nightlightctl.app/nightlightctl/internal/settings"
)

func currentConfig() settings.SystemConfig {
	return settings.SystemConfig{
		Display: settings.DisplayConfig{
			NightLight: settings.NightLightConfig{
				Enabled:           false,
				Temperature:       4000,
				ScheduleAutomatic: true,
				ScheduleFrom:      20,
				ScheduleTo:        6,
			},
		},
		Interface: settings.InterfaceConfig{TextScale: 1},
	}
}

func withFlags(t *testing.T, fn func()) {
	t.Helper()

	preset, temp, enable, auto := *presetArg, *tempArg, *enablePtr, *autoPtr
	from, to, scale, mode := *fromArg, *toArg, *scaleArg, *modeArg
	t.Cleanup(func() {
		*presetArg, *tempArg, *enablePtr, *autoPtr = preset, temp, enable, auto
		*fromArg, *toArg, *scaleArg, *modeArg = from, to, scale, mode
	})

	fn()
}

func TestMergeConfigFlagsOverridePreferences(t *testing.T) {
	withFlags(t, func() {
		*tempArg = 2500
		*scaleArg = 1.25
	})

	prefs := config.Parse([]byte("preset = warm\ntemperature = 2000\nfont_scale = 2\n"))

	got, err := mergeConfig(currentConfig(), prefs, map[string]bool{"t": true, "scale": true})
	if err != nil {
		t.Fatalf("mergeConfig failed: %v", err)
	}

	want := currentConfig()
	want.Display.NightLight = settings.PresetWarm.Config()
	want.Display.NightLight.Temperature = 2500
	want.Interface.TextScale = 1.25

	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestMergeConfigPresetFlagBeatsPreferences(t *testing.T) {
	withFlags(t, func() {
		*presetArg = "most-cool"
	})

	prefs := config.Parse([]byte("temperature = 2000\n"))

	got, err := mergeConfig(currentConfig(), prefs, map[string]bool{"p": true})
	if err != nil {
		t.Fatalf("mergeConfig failed: %v", err)
	}

	if got.Display.NightLight != settings.PresetMostCool.Config() {
		t.Fatalf("got %+v, want %+v", got.Display.NightLight, settings.PresetMostCool.Config())
	}
}

func TestMergeConfigUnsetFlagsKeepCurrent(t *testing.T) {
	withFlags(t, func() {
		*enablePtr = true
		*autoPtr = false
		*fromArg = 21.5
		*toArg = 7
		*modeArg = "monochrome, red_green"
	})

	got, err := mergeConfig(currentConfig(), nil, map[string]bool{"enable": true, "auto": true, "from": true, "to": true, "mode": true})
	if err != nil {
		t.Fatalf("mergeConfig failed: %v", err)
	}

	nl := got.Display.NightLight
	if !nl.Enabled || nl.ScheduleAutomatic || nl.ScheduleFrom != 21.5 || nl.ScheduleTo != 7 || nl.Temperature != 4000 {
		t.Fatalf("unexpected night light %+v", nl)
	}

	if got.Display.Effects != settings.EffectMonochrome|settings.EffectRedGreen {
		t.Fatalf("got effects %v", got.Display.Effects)
	}
}

func TestMergeConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		set  func()
		flag string
	}{
		{name: "temperature too low", set: func() { *tempArg = 1000 }, flag: "t"},
		{name: "temperature overflow", set: func() { *tempArg = ^uint(0) }, flag: "t"},
		{name: "bad scale", set: func() { *scaleArg = 0 }, flag: "scale"},
		{name: "bad preset", set: func() { *presetArg = "hot" }, flag: "p"},
		{name: "bad mode", set: func() { *modeArg = "sepia" }, flag: "mode"},
		{name: "nan scale", set: func() { *scaleArg = math.NaN() }, flag: "scale"},
		{name: "nan from", set: func() { *fromArg = math.NaN() }, flag: "from"},
		{name: "to past midnight", set: func() { *toArg = 25 }, flag: "to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, tt.set)

			if _, err := mergeConfig(currentConfig(), nil, map[string]bool{tt.flag: true}); err == nil {
				t.Fatalf("mergeConfig succeeded, want error")
			}
		})
	}
}

func TestMergeConfigKeepsStoredValuesOutsideRange(t *testing.T) {
	withFlags(t, func() {
		*scaleArg = 1.2
	})

	current := currentConfig()
	current.Display.NightLight.Temperature = 6500

	got, err := mergeConfig(current, nil, map[string]bool{"scale": true})
	if err != nil {
		t.Fatalf("mergeConfig failed: %v", err)
	}

	if got.Display.NightLight.Temperature != 6500 || got.Interface.TextScale != 1.2 {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestMergeConfigChecksPreferenceValues(t *testing.T) {
	current := currentConfig()
	current.Display.NightLight.Temperature = 6500

	for _, in := range []string{"temperature = 6000\n", "font_scale = 5\n"} {
		if _, err := mergeConfig(current, config.Parse([]byte(in)), map[string]bool{}); err == nil {
			t.Fatalf("mergeConfig(%q) succeeded, want error", in)
		}
	}

	got, err := mergeConfig(current, config.Parse([]byte("preset = cool\n")), map[string]bool{})
	if err != nil {
		t.Fatalf("mergeConfig failed: %v", err)
	}
	if got.Display.NightLight != settings.PresetCool.Config() {
		t.Fatalf("got %+v", got.Display.NightLight)
	}
}

func TestRequestsChange(t *testing.T) {
	if requestsChange(map[string]bool{"debug": true, "c": true}) {
		t.Fatalf("debug and config flags are not changes")
	}

	if !requestsChange(map[string]bool{"scale": true}) {
		t.Fatalf("scale is a change")
	}
}

func TestPrintStatus(t *testing.T) {
	var b bytes.Buffer

	c := currentConfig()
	printStatus(&b, c)
	want := "Night light: off\nTemperature: 4000 K\nSchedule:    automatic\nText scale:  1\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}

	b.Reset()
	c.Display.NightLight = settings.PresetNeutral.Config()
	c.Interface.TextScale = 1.25
	printStatus(&b, c)
	want = "Night light: on\nTemperature: 3500 K\nSchedule:    0 - 24\nText scale:  1.25\n"
	if b.String() != want {
		t.Fatalf("got %q, want %q", b.String(), want)
	}
}
