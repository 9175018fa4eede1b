package settings

import (
	"fmt"

	"github.com/rs/zerolog"
	"nightlightctl.app/nightlightctl/internal/gsettings"
)

const (
	ColorSchema     = "org.gnome.settings-daemon.plugins.color"
	InterfaceSchema = "org.gnome.desktop.interface"

	KeyNightLightEnabled           = "night-light-enabled"
	KeyNightLightTemperature       = "night-light-temperature"
	KeyNightLightScheduleAutomatic = "night-light-schedule-automatic"
	KeyNightLightScheduleFrom      = "night-light-schedule-from"
	KeyNightLightScheduleTo        = "night-light-schedule-to"
	KeyTextScalingFactor           = "text-scaling-factor"
)

// Client reads and applies the desktop configuration through a Store.
// Calls are sequential and nothing is cached. A failed write in the
// middle of an apply leaves the earlier writes in place.
type Client struct {
	Store *gsettings.Store
}

// NewClient returns a Client that talks to the settings tool through r.
func NewClient(r gsettings.Runner) *Client {
	return &Client{Store: gsettings.NewStore(r)}
}

func (c *Client) log() *zerolog.Logger {
	return c.Store.Log()
}

// ReadNightLight reads enabled, temperature, schedule-automatic,
// schedule-from and schedule-to, in that order.
func (c *Client) ReadNightLight() (NightLightConfig, error) {
	var (
		cfg NightLightConfig
		err error
	)

	if cfg.Enabled, err = c.Store.ReadBool(ColorSchema, KeyNightLightEnabled); err != nil {
		return NightLightConfig{}, fmt.Errorf("ReadNightLight: %w", err)
	}

	if cfg.Temperature, err = c.Store.ReadUint32(ColorSchema, KeyNightLightTemperature); err != nil {
		return NightLightConfig{}, fmt.Errorf("ReadNightLight: %w", err)
	}

	if cfg.ScheduleAutomatic, err = c.Store.ReadBool(ColorSchema, KeyNightLightScheduleAutomatic); err != nil {
		return NightLightConfig{}, fmt.Errorf("ReadNightLight: %w", err)
	}

	if cfg.ScheduleFrom, err = c.Store.ReadFloat64(ColorSchema, KeyNightLightScheduleFrom); err != nil {
		return NightLightConfig{}, fmt.Errorf("ReadNightLight: %w", err)
	}

	if cfg.ScheduleTo, err = c.Store.ReadFloat64(ColorSchema, KeyNightLightScheduleTo); err != nil {
		return NightLightConfig{}, fmt.Errorf("ReadNightLight: %w", err)
	}

	return cfg, nil
}

// ApplyNightLight writes enabled, temperature and schedule-automatic.
// The two schedule hours are written only for a manual schedule; with
// an automatic one the stored hours are left alone.
func (c *Client) ApplyNightLight(cfg NightLightConfig) error {
	if err := c.Store.WriteBool(ColorSchema, KeyNightLightEnabled, cfg.Enabled); err != nil {
		return fmt.Errorf("ApplyNightLight: %w", err)
	}

	if err := c.Store.WriteUint32(ColorSchema, KeyNightLightTemperature, cfg.Temperature); err != nil {
		return fmt.Errorf("ApplyNightLight: %w", err)
	}

	if err := c.Store.WriteBool(ColorSchema, KeyNightLightScheduleAutomatic, cfg.ScheduleAutomatic); err != nil {
		return fmt.Errorf("ApplyNightLight: %w", err)
	}

	if cfg.ScheduleAutomatic {
		return nil
	}

	if err := c.Store.WriteFloat64(ColorSchema, KeyNightLightScheduleFrom, cfg.ScheduleFrom); err != nil {
		return fmt.Errorf("ApplyNightLight: %w", err)
	}

	if err := c.Store.WriteFloat64(ColorSchema, KeyNightLightScheduleTo, cfg.ScheduleTo); err != nil {
		return fmt.Errorf("ApplyNightLight: %w", err)
	}

	return nil
}

// ReadInterface reads the text scaling factor.
func (c *Client) ReadInterface() (InterfaceConfig, error) {
	scale, err := c.Store.ReadFloat64(InterfaceSchema, KeyTextScalingFactor)
	if err != nil {
		return InterfaceConfig{}, fmt.Errorf("ReadInterface: %w", err)
	}

	return InterfaceConfig{TextScale: scale}, nil
}

// ApplyInterface writes the text scaling factor as given. Callers
// validate it first.
func (c *Client) ApplyInterface(cfg InterfaceConfig) error {
	if err := c.Store.WriteFloat64(InterfaceSchema, KeyTextScalingFactor, cfg.TextScale); err != nil {
		return fmt.Errorf("ApplyInterface: %w", err)
	}

	return nil
}

// ReadDisplay reads the night light. Effects are not kept in the
// settings store, so they always come back as normal.
func (c *Client) ReadDisplay() (DisplayConfig, error) {
	nl, err := c.ReadNightLight()
	if err != nil {
		return DisplayConfig{}, err
	}

	return DisplayConfig{
		NightLight:     nl,
		Effects:        EffectsNormal,
		RedIntensity:   1.0,
		GreenIntensity: 1.0,
	}, nil
}

// ApplyDisplay applies the night light. Color effects need compositor
// gamma control, which is not implemented: every mode, normal included,
// ends after the night light write.
func (c *Client) ApplyDisplay(cfg DisplayConfig) error {
	if err := c.ApplyNightLight(cfg.NightLight); err != nil {
		return err
	}

	switch {
	case cfg.Effects == EffectsNormal:
	case cfg.Effects.Has(EffectMonochrome), cfg.Effects.Has(EffectRedGreen):
		c.log().Debug().Str("Method", "ApplyDisplay").Str("Effects", cfg.Effects.String()).
			Msg("color effects are not supported yet, skipping")
	}

	return nil
}

// ReadSystem reads the display settings, then the interface settings.
func (c *Client) ReadSystem() (SystemConfig, error) {
	display, err := c.ReadDisplay()
	if err != nil {
		return SystemConfig{}, err
	}

	iface, err := c.ReadInterface()
	if err != nil {
		return SystemConfig{}, err
	}

	return SystemConfig{Display: display, Interface: iface}, nil
}

// ApplySystem applies the display settings before the interface ones.
func (c *Client) ApplySystem(cfg SystemConfig) error {
	if err := c.ApplyDisplay(cfg.Display); err != nil {
		return err
	}

	return c.ApplyInterface(cfg.Interface)
}
