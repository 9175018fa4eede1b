package interactive

import (
	"github.com/gdamore/tcell/v2"
	"nightlightctl.app/nightlightctl/internal/settings"
)

const (
	temperatureStep = 100
	textScaleStep   = 0.05
)

type action int

const (
	actionNone action = iota
	// actionPreview - the night light changed and can be written right away.
	actionPreview
	// actionChanged - something changed that is only written on apply.
	actionChanged
	actionApply
	actionReload
	actionQuit
)

// model is the state edited on screen. It never talks to the
// settings store; the screen acts on the returned action. base is the
// configuration last read or applied, and only fields that moved away
// from it are validated on apply.
type model struct {
	cfg       settings.SystemConfig
	base      settings.SystemConfig
	preset    settings.Preset
	hasPreset bool
}

func newModel(cfg settings.SystemConfig) *model {
	return &model{cfg: cfg, base: cfg}
}

func (m *model) handleKey(key tcell.Key, r rune) action {
	nl := &m.cfg.Display.NightLight

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionApply
	case tcell.KeyLeft:
		nl.Temperature = settings.ClampTemperature(int(nl.Temperature) - temperatureStep)
		m.hasPreset = false
		return actionPreview
	case tcell.KeyRight:
		nl.Temperature = settings.ClampTemperature(int(nl.Temperature) + temperatureStep)
		m.hasPreset = false
		return actionPreview
	case tcell.KeyUp:
		m.cfg.Interface.TextScale = settings.ClampTextScale(m.cfg.Interface.TextScale + textScaleStep)
		return actionChanged
	case tcell.KeyDown:
		m.cfg.Interface.TextScale = settings.ClampTextScale(m.cfg.Interface.TextScale - textScaleStep)
		return actionChanged
	case tcell.KeyRune:
	default:
		return actionNone
	}

	switch r {
	case 'q':
		return actionQuit
	case 'e':
		nl.Enabled = !nl.Enabled
		return actionPreview
	case 'a':
		nl.ScheduleAutomatic = !nl.ScheduleAutomatic
		return actionPreview
	case 'p':
		if m.hasPreset {
			m.preset = m.preset.Next()
		} else {
			m.preset = settings.PresetMostWarm
			m.hasPreset = true
		}
		*nl = m.preset.Config()
		return actionPreview
	case 'r':
		return actionReload
	}

	return actionNone
}

// reset replaces the edited state, keeping the effects selector since
// the store does not hold it.
func (m *model) reset(cfg settings.SystemConfig) {
	cfg.Display.Effects = m.cfg.Display.Effects
	m.cfg = cfg
	m.base = cfg
	m.hasPreset = false
}
