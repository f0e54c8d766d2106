// Package mapper translates a dense key-state vector and pointer delta into
// the logical InputFrame the wheel state engine consumes.
package mapper

import (
	"log/slog"

	"github.com/riftwheel/g29emu/internal/buttonset"
	"github.com/riftwheel/g29emu/internal/config"
	"github.com/riftwheel/g29emu/internal/frame"
	"github.com/riftwheel/g29emu/internal/keycode"
)

// Mapper holds the resolved configuration needed to build a frame each
// tick: the key->virtual-button table and the fixed D-pad key codes.
type Mapper struct {
	throttleKey int
	brakeKey    int
	clutchKey   int

	dpadUp, dpadDown, dpadLeft, dpadRight int

	buttonMap map[int]buttonset.Button
}

// Default pedal and D-pad key bindings, matching the reference
// implementation's fixed (non-configurable) pedal/arrow assignment.
const (
	defaultThrottleKeyName = "KEY_UP"
	defaultBrakeKeyName    = "KEY_DOWN"
	defaultClutchKeyName   = "KEY_LEFTSHIFT"
)

// New builds a Mapper from a loaded Config.
func New(cfg *config.Config, logger *slog.Logger) *Mapper {
	m := &Mapper{buttonMap: cfg.ResolvedButtonMapping(logger)}

	m.throttleKey, _ = keycode.ByName(defaultThrottleKeyName)
	m.brakeKey, _ = keycode.ByName(defaultBrakeKeyName)
	m.clutchKey, _ = keycode.ByName(defaultClutchKeyName)

	m.dpadUp, _ = keycode.ByName("KEY_UP")
	m.dpadDown, _ = keycode.ByName("KEY_DOWN")
	m.dpadLeft, _ = keycode.ByName("KEY_LEFT")
	m.dpadRight, _ = keycode.ByName("KEY_RIGHT")

	return m
}

// Map derives an InputFrame from the current key vector and accumulated
// pointer delta. Pedals and buttons are digital reads of the key vector;
// D-pad opposing keys cancel to 0 on that axis (§4.B).
func (m *Mapper) Map(keys *keycode.Vector, mouseDx int32, togglePressed bool) frame.InputFrame {
	f := frame.InputFrame{
		MouseDx:       mouseDx,
		TogglePressed: togglePressed,
	}

	f.Throttle = keys[m.throttleKey]
	f.Brake = keys[m.brakeKey]
	f.Clutch = keys[m.clutchKey]

	f.DpadX = dpadSign(keys[m.dpadRight], keys[m.dpadLeft])
	f.DpadY = dpadSign(keys[m.dpadDown], keys[m.dpadUp])

	for key, btn := range m.buttonMap {
		if keys[key] {
			f.Buttons[btn] = 1
		}
	}

	return f
}

func dpadSign(positive, negative bool) int8 {
	switch {
	case positive && negative:
		return 0
	case positive:
		return 1
	case negative:
		return -1
	default:
		return 0
	}
}
