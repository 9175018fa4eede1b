package config

import "nightlightctl.app/nightlightctl/internal/settings"

// Preference holds the overrides read from the preferences file.
// A nil field was not set, or was set to something we could not parse.
type Preference struct {
	Preset      *settings.Preset
	Temperature *uint32
	Enable      *bool
	Mode        *settings.Effects
	FontScale   *float64
}

// IsEmpty reports whether no field is set.
func (p *Preference) IsEmpty() bool {
	return p == nil || (p.Preset == nil &&
		p.Temperature == nil &&
		p.Enable == nil &&
		p.Mode == nil &&
		p.FontScale == nil)
}

// ApplyTo returns c with the preference overrides applied. The preset
// goes first so the individual keys can refine it.
func (p *Preference) ApplyTo(c settings.SystemConfig) settings.SystemConfig {
	if p == nil {
		return c
	}

	if p.Preset != nil {
		c.Display.NightLight = p.Preset.Config()
	}

	if p.Temperature != nil {
		c.Display.NightLight.Temperature = *p.Temperature
	}

	if p.Enable != nil {
		c.Display.NightLight.Enabled = *p.Enable
	}

	if p.Mode != nil {
		c.Display.Effects = *p.Mode
	}

	if p.FontScale != nil {
		c.Interface.TextScale = *p.FontScale
	}

	return c
}
