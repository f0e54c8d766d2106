// Package frame defines the per-tick value produced by the input mapper and
// consumed by the wheel state engine.
package frame

import "github.com/riftwheel/g29emu/internal/buttonset"

// InputFrame is a transient, per-tick snapshot of logical input. One is
// produced every main-loop iteration and handed to the engine; it is never
// retained past that call.
type InputFrame struct {
	MouseDx int32

	Throttle bool
	Brake    bool
	Clutch   bool

	Buttons [buttonset.NumButtons]uint8

	DpadX int8
	DpadY int8

	TogglePressed bool
}
