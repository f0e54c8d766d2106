package inputdevice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreKeyboardPrefersNameContainingKeyboard(t *testing.T) {
	assert.Greater(t, scoreKeyboard("AT Translated Set 2 keyboard"), scoreKeyboard("Logitech G29 Wheel"))
}

func TestScorePointerPrefersMouseOrWirelessDevice(t *testing.T) {
	assert.Greater(t, scorePointer("Logitech USB Optical Mouse"), scorePointer("Some Random Device"))
	assert.Greater(t, scorePointer("Logitech Wireless Device"), scorePointer("Some Random Device"))
}

func TestDeprioritizeTouchpadAndControlDevices(t *testing.T) {
	cases := []string{
		"synaptics touchpad",
		"elan touchpad",
		"video bus consumer control",
		"system control",
	}
	for _, name := range cases {
		assert.Negative(t, deprioritize(name))
	}
	assert.Zero(t, deprioritize("a perfectly normal keyboard"))
}

func TestScoreKeyboardDeprioritizesTouchpad(t *testing.T) {
	assert.Less(t, scoreKeyboard("Synaptics touchpad"), scoreKeyboard("Generic keyboard"))
}

func TestDiscoverPrefersExplicitPaths(t *testing.T) {
	kb, ptr, err := Discover("/dev/input/event7", "/dev/input/event8")
	assert.NoError(t, err)
	assert.Equal(t, "/dev/input/event7", kb)
	assert.Equal(t, "/dev/input/event8", ptr)
}

func TestDiscoverMixedExplicitAndScanned(t *testing.T) {
	// An explicit keyboard path wins outright even if no pointer was
	// configured; the pointer side falls back to scanning (which may
	// legitimately find nothing in a sandboxed test environment).
	kb, _, err := Discover("/dev/input/event7", "")
	assert.NoError(t, err)
	assert.Equal(t, "/dev/input/event7", kb)
}
