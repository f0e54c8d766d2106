// Package keycode maps the KEY_* names used in g29emu's configuration file
// to Linux evdev key codes (github.com/gvalkov/golang-evdev mirrors the
// kernel's linux/input-event-codes.h names 1:1, as used throughout the
// wider Go evdev ecosystem — see e.g. a pedal-mapping tool that keys its
// config off the same evdev.KEY_* constants).
package keycode

import "github.com/gvalkov/golang-evdev"

// byName resolves the subset of KEY_* names g29emu's documentation and
// default config advertise, plus the toggle chord and D-pad arrows.
var byName = map[string]int{
	"KEY_A": evdev.KEY_A, "KEY_B": evdev.KEY_B, "KEY_C": evdev.KEY_C,
	"KEY_D": evdev.KEY_D, "KEY_E": evdev.KEY_E, "KEY_F": evdev.KEY_F,
	"KEY_G": evdev.KEY_G, "KEY_H": evdev.KEY_H, "KEY_I": evdev.KEY_I,
	"KEY_J": evdev.KEY_J, "KEY_K": evdev.KEY_K, "KEY_L": evdev.KEY_L,
	"KEY_M": evdev.KEY_M, "KEY_N": evdev.KEY_N, "KEY_O": evdev.KEY_O,
	"KEY_P": evdev.KEY_P, "KEY_Q": evdev.KEY_Q, "KEY_R": evdev.KEY_R,
	"KEY_S": evdev.KEY_S, "KEY_T": evdev.KEY_T, "KEY_U": evdev.KEY_U,
	"KEY_V": evdev.KEY_V, "KEY_W": evdev.KEY_W, "KEY_X": evdev.KEY_X,
	"KEY_Y": evdev.KEY_Y, "KEY_Z": evdev.KEY_Z,

	"KEY_1": evdev.KEY_1, "KEY_2": evdev.KEY_2, "KEY_3": evdev.KEY_3,
	"KEY_4": evdev.KEY_4, "KEY_5": evdev.KEY_5, "KEY_6": evdev.KEY_6,
	"KEY_7": evdev.KEY_7, "KEY_8": evdev.KEY_8, "KEY_9": evdev.KEY_9,
	"KEY_0": evdev.KEY_0,

	"KEY_TAB":       evdev.KEY_TAB,
	"KEY_ENTER":     evdev.KEY_ENTER,
	"KEY_SPACE":     evdev.KEY_SPACE,
	"KEY_LEFTSHIFT": evdev.KEY_LEFTSHIFT,
	"KEY_LEFTCTRL":  evdev.KEY_LEFTCTRL,
	"KEY_RIGHTCTRL": evdev.KEY_RIGHTCTRL,
	"KEY_LEFTALT":   evdev.KEY_LEFTALT,

	"KEY_UP":    evdev.KEY_UP,
	"KEY_DOWN":  evdev.KEY_DOWN,
	"KEY_LEFT":  evdev.KEY_LEFT,
	"KEY_RIGHT": evdev.KEY_RIGHT,
}

// ByName resolves a configuration key name (e.g. "KEY_Q") to its evdev
// keycode. ok is false for any name g29emu does not recognize.
func ByName(name string) (code int, ok bool) {
	code, ok = byName[name]
	return
}

// KeyMax bounds the dense key-state vector the Input Reader maintains.
// Linux's KEY_MAX is 0x2ff; evdev exposes the same constant.
const KeyMax = evdev.KEY_MAX

// Vector is the dense boolean key-state snapshot shared between the input
// reader and the input mapper, indexed by evdev keycode.
type Vector [KeyMax + 1]bool
