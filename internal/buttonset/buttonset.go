// Package buttonset defines the fixed set of logical wheel button slots,
// shared by the config loader, the input mapper, and the wheel state
// engine without creating an import cycle between them.
package buttonset

// Button identifies one of the wheel's logical button slots. Names match
// the vJoy/G29-style layout used by the reference implementation's
// button_map (KEY_Q=BTN_A style entries) and the configuration file's
// [button_mapping] section.
type Button int

const (
	Trigger Button = iota
	Thumb
	Thumb2
	Top
	Top2
	Pinkie
	Base
	Base2
	Base3
	Base4
	Base5
	Base6
	Dead
	NumButtons
)

// buttonNames is the fixed set of virtual button names recognized
// in [button_mapping]. Unknown names on either side of a mapping entry are
// ignored with a warning.
var buttonNames = map[string]Button{
	"TRIGGER": Trigger,
	"THUMB":   Thumb,
	"THUMB2":  Thumb2,
	"TOP":     Top,
	"TOP2":    Top2,
	"PINKIE":  Pinkie,
	"BASE":    Base,
	"BASE2":   Base2,
	"BASE3":   Base3,
	"BASE4":   Base4,
	"BASE5":   Base5,
	"BASE6":   Base6,
	"DEAD":    Dead,
}

// ButtonByName resolves a configured virtual button name. ok is false for
// any name outside the fixed set.
func ButtonByName(name string) (b Button, ok bool) {
	b, ok = buttonNames[name]
	return
}
