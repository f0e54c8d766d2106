// Package wheel implements the wheel state engine: the authoritative
// WheelState, the steering accumulator, the FFB physics loop, and the
// three-state (Disabled/Enabled/Terminating) engine that drives both.
package wheel

import (
	"github.com/riftwheel/g29emu/internal/backend"
	"github.com/riftwheel/g29emu/internal/buttonset"
	"github.com/riftwheel/g29emu/internal/frame"
)

// State is the singleton wheel state, mutated only by the engine under its
// state mutex.
type State struct {
	UserSteering float32 // [-32768, +32767], user-commanded accumulator
	FFBOffset    float32 // [-22000, +22000], torque-driven displacement
	FFBVelocity  float32 // [-90000, +90000]
	Steering     float32 // clamp(UserSteering + FFBOffset, -32768, +32767)

	Throttle float32 // [0, 1]
	Brake    float32
	Clutch   float32

	Buttons [buttonset.NumButtons]uint8
	DpadX   int8
	DpadY   int8
}

// processFrame implements §4.D.1: accumulate steering from mouse delta and
// sensitivity, then copy pedal/button/D-pad fields. Must be called under
// the state mutex.
func (s *State) processFrame(f frame.InputFrame, sensitivity int) {
	delta := float32(f.MouseDx) * float32(sensitivity) * sensitivityScale
	delta = clampF32(delta, -deltaStepLimit, deltaStepLimit)

	if delta != 0 {
		s.UserSteering = clampF32(s.UserSteering+delta, steeringMin, steeringMax)
		s.applySteering()
	}

	s.Throttle = boolToF32(f.Throttle)
	s.Brake = boolToF32(f.Brake)
	s.Clutch = boolToF32(f.Clutch)
	s.Buttons = f.Buttons
	s.DpadX = f.DpadX
	s.DpadY = f.DpadY
}

// applySteering implements §4.D.3: recompute the reported steering value and
// return its change from the previous value. It recomputes on every call,
// however small the change; no caller uses the returned change to skip a
// report.
func (s *State) applySteering() float32 {
	prev := s.Steering
	s.Steering = clampF32(s.UserSteering+s.FFBOffset, steeringMin, steeringMax)
	return s.Steering - prev
}

// toReport converts current state into the HID backend's normalized
// representation (§4.D.4).
func (s *State) toReport() backend.Report {
	buttons := make([]uint8, len(s.Buttons))
	copy(buttons, s.Buttons[:])
	return backend.Report{
		SteeringNormalized: s.Steering / 32768.0,
		Throttle:           s.Throttle,
		Brake:              s.Brake,
		Clutch:             s.Clutch,
		Buttons:            buttons,
		DpadX:              s.DpadX,
		DpadY:              s.DpadY,
	}
}

// neutralReport is the all-zero report emitted on disablement.
func neutralReport() backend.Report {
	return backend.Report{Buttons: make([]uint8, buttonset.NumButtons)}
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boolToF32(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
