package settings

import (
	"fmt"
	"math"
)

const (
	MinTemperature uint32 = 1700
	MaxTemperature uint32 = 4700

	MinTextScale = 0.5
	MaxTextScale = 3.0
)

// ValidateTemperature checks a temperature a user asked for. The desktop
// itself accepts a wider range, so values read back from the store are
// not checked against it.
func ValidateTemperature(t uint32) error {
	if t < MinTemperature || t > MaxTemperature {
		return fmt.Errorf("temperature %d out of range [%d, %d]", t, MinTemperature, MaxTemperature)
	}
	return nil
}

// ValidateHour checks a manual schedule hour.
func ValidateHour(h float64) error {
	if math.IsNaN(h) || h < 0 || h > 24 {
		return fmt.Errorf("hour %g out of range [0, 24]", h)
	}
	return nil
}

// ValidateTextScale checks a text scaling factor.
func ValidateTextScale(s float64) error {
	if math.IsNaN(s) || s < MinTextScale || s > MaxTextScale {
		return fmt.Errorf("text scale %g out of range [%g, %g]", s, MinTextScale, MaxTextScale)
	}
	return nil
}

// ValidateChanges checks only the fields of c that differ from base,
// so settings nobody touched pass through as the store reported them.
// Schedule hours are skipped while the schedule is automatic.
func (c SystemConfig) ValidateChanges(base SystemConfig) error {
	nl, old := c.Display.NightLight, base.Display.NightLight

	if nl.Temperature != old.Temperature {
		if err := ValidateTemperature(nl.Temperature); err != nil {
			return err
		}
	}

	if !nl.ScheduleAutomatic {
		if nl.ScheduleFrom != old.ScheduleFrom {
			if err := ValidateHour(nl.ScheduleFrom); err != nil {
				return fmt.Errorf("schedule from: %w", err)
			}
		}
		if nl.ScheduleTo != old.ScheduleTo {
			if err := ValidateHour(nl.ScheduleTo); err != nil {
				return fmt.Errorf("schedule to: %w", err)
			}
		}
	}

	if s := c.Interface.TextScale; s != base.Interface.TextScale {
		if err := ValidateTextScale(s); err != nil {
			return err
		}
	}

	return nil
}

// ClampTemperature pins t to the supported range.
func ClampTemperature(t int) uint32 {
	switch {
	case t < int(MinTemperature):
		return MinTemperature
	case t > int(MaxTemperature):
		return MaxTemperature
	}
	return uint32(t)
}

// ClampTextScale pins s to the supported range.
func ClampTextScale(s float64) float64 {
	switch {
	case s < MinTextScale:
		return MinTextScale
	case s > MaxTextScale:
		return MaxTextScale
	}
	return s
}
