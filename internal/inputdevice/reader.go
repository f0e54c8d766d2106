package inputdevice

import (
	"errors"
	"log/slog"
	"syscall"

	evdev "github.com/gvalkov/golang-evdev"
	"golang.org/x/sys/unix"

	"github.com/riftwheel/g29emu/internal/keycode"
)

// Key codes of the chord that enables/disables wheel emulation:
// (LeftCtrl or RightCtrl) + M.
var (
	keyLeftCtrl  int
	keyRightCtrl int
	keyM         int
)

func init() {
	keyLeftCtrl, _ = keycode.ByName("KEY_LEFTCTRL")
	keyRightCtrl, _ = keycode.ByName("KEY_RIGHTCTRL")
	keyM, _ = keycode.ByName("KEY_M")
}

// Reader presents the two physical device streams as a dense key-state
// vector, an accumulated per-tick pointer delta, and a toggle-chord edge
// (§4.A). Either device may be nil; a nil stream simply yields no events.
type Reader struct {
	keyboard *evdev.InputDevice
	pointer  *evdev.InputDevice
	logger   *slog.Logger

	keys          keycode.Vector
	toggleWasHeld bool
}

// Open opens the keyboard and/or pointer device at the given paths (either
// may be empty, meaning that stream is absent) and puts their file
// descriptors in non-blocking mode so Read never blocks the caller.
func Open(keyboardPath, pointerPath string, logger *slog.Logger) (*Reader, error) {
	r := &Reader{logger: logger}

	if keyboardPath != "" {
		dev, err := evdev.Open(keyboardPath)
		if err != nil {
			return nil, err
		}
		if err := unix.SetNonblock(int(dev.File.Fd()), true); err != nil {
			dev.File.Close()
			return nil, err
		}
		r.keyboard = dev
	}

	if pointerPath != "" {
		dev, err := evdev.Open(pointerPath)
		if err != nil {
			if r.keyboard != nil {
				r.keyboard.File.Close()
			}
			return nil, err
		}
		if err := unix.SetNonblock(int(dev.File.Fd()), true); err != nil {
			dev.File.Close()
			if r.keyboard != nil {
				r.keyboard.File.Close()
			}
			return nil, err
		}
		r.pointer = dev
	}

	return r, nil
}

// Close releases both device handles.
func (r *Reader) Close() {
	if r.keyboard != nil {
		r.keyboard.File.Close()
	}
	if r.pointer != nil {
		r.pointer.File.Close()
	}
}

// Grab acquires or releases exclusive access to both devices (§4.A). On
// enable, failure is reported to the caller; on release, failure is
// logged but never halts the shutdown path.
func (r *Reader) Grab(enable bool) error {
	if enable {
		if r.keyboard != nil {
			if err := r.keyboard.Grab(); err != nil {
				return err
			}
		}
		if r.pointer != nil {
			if err := r.pointer.Grab(); err != nil {
				if r.keyboard != nil {
					_ = r.keyboard.Release()
				}
				return err
			}
		}
		return nil
	}

	if r.keyboard != nil {
		if err := r.keyboard.Release(); err != nil {
			r.logger.Warn("failed to release keyboard grab", "error", err)
		}
	}
	if r.pointer != nil {
		if err := r.pointer.Release(); err != nil {
			r.logger.Warn("failed to release pointer grab", "error", err)
		}
	}
	return nil
}

// tickBudget bounds how many events Read drains per device invocation, so
// a burst of pending events cannot stall the tick loop (§4.A).
const tickBudget = 256

// Read performs a non-blocking drain of both device streams, updating the
// internal key vector in place and returning the tick's accumulated
// horizontal pointer delta. Short reads and EAGAIN/EINTR are not errors.
func (r *Reader) Read() (mouseDx int32) {
	if r.keyboard != nil {
		r.drainKeyboard()
	}
	if r.pointer != nil {
		mouseDx = r.drainPointer()
	}
	return mouseDx
}

func (r *Reader) drainKeyboard() {
	for i := 0; i < tickBudget; i++ {
		ev, err := r.keyboard.ReadOne()
		if err != nil {
			if isTransient(err) {
				return
			}
			r.logger.Debug("keyboard read error", "error", err)
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		if int(ev.Code) >= len(r.keys) {
			continue
		}
		r.keys[ev.Code] = ev.Value != 0 // KeyUp=0, KeyDown=1, KeyHold=2
	}
}

func (r *Reader) drainPointer() (mouseDx int32) {
	for i := 0; i < tickBudget; i++ {
		ev, err := r.pointer.ReadOne()
		if err != nil {
			if isTransient(err) {
				return mouseDx
			}
			r.logger.Debug("pointer read error", "error", err)
			return mouseDx
		}
		switch ev.Type {
		case evdev.EV_REL:
			if ev.Code == evdev.REL_X {
				mouseDx += ev.Value
			}
		case evdev.EV_KEY:
			if int(ev.Code) < len(r.keys) {
				r.keys[ev.Code] = ev.Value != 0
			}
		}
	}
	return mouseDx
}

func isTransient(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EINTR)
}

// Keys returns the current dense key-state vector. The pointer is valid
// until the next call to Read.
func (r *Reader) Keys() *keycode.Vector {
	return &r.keys
}

// CheckToggle implements the rising-edge detector on (LeftCtrl or
// RightCtrl) + M: true iff the chord is held now but was not held on the
// previous call (§4.A, §8 property 8).
func (r *Reader) CheckToggle() bool {
	held := (r.keys[keyLeftCtrl] || r.keys[keyRightCtrl]) && r.keys[keyM]
	edge := held && !r.toggleWasHeld
	r.toggleWasHeld = held
	return edge
}
