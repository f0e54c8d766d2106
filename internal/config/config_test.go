package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftwheel/g29emu/internal/buttonset"
	"github.com/riftwheel/g29emu/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadExplicitParsesAllSections(t *testing.T) {
	path := writeTemp(t, `# comment
[devices]
keyboard=/dev/input/event3
mouse=/dev/input/event5

[sensitivity]
sensitivity=75

[button_mapping]
KEY_Q=TRIGGER
KEY_E=THUMB
`)

	cfg, err := config.LoadExplicit(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "/dev/input/event3", cfg.Devices.Keyboard)
	assert.Equal(t, "/dev/input/event5", cfg.Devices.Mouse)
	assert.Equal(t, 75, cfg.Sensitivity)
	assert.Equal(t, "TRIGGER", cfg.ButtonMapping["KEY_Q"])
	assert.Equal(t, "THUMB", cfg.ButtonMapping["KEY_E"])
}

func TestLoadExplicitClampsSensitivity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"0", 1},
		{"500", 100},
		{"50", 50},
	}
	for _, tc := range cases {
		path := writeTemp(t, "[sensitivity]\nsensitivity="+tc.raw+"\n")
		cfg, err := config.LoadExplicit(path, testLogger())
		require.NoError(t, err)
		assert.Equal(t, tc.want, cfg.Sensitivity)
	}
}

func TestLoadExplicitMalformedSensitivityFallsBackToDefault(t *testing.T) {
	path := writeTemp(t, "[sensitivity]\nsensitivity=not-a-number\n")
	cfg, err := config.LoadExplicit(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Sensitivity)
}

func TestLoadExplicitSkipsUnknownButtonMappingNames(t *testing.T) {
	path := writeTemp(t, "[button_mapping]\nKEY_BOGUS=TRIGGER\nKEY_Q=NOT_REAL\nKEY_E=THUMB\n")
	cfg, err := config.LoadExplicit(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "THUMB", cfg.ButtonMapping["KEY_E"])
	_, hasBogus := cfg.ButtonMapping["KEY_BOGUS"]
	assert.False(t, hasBogus)
	_, hasQ := cfg.ButtonMapping["KEY_Q"]
	assert.False(t, hasQ)
}

func TestLoadExplicitMissingFileReturnsError(t *testing.T) {
	_, err := config.LoadExplicit(filepath.Join(t.TempDir(), "missing.ini"), testLogger())
	assert.Error(t, err)
}

func TestResolvedButtonMappingResolvesKnownEntries(t *testing.T) {
	cfg := &config.Config{ButtonMapping: map[string]string{
		"KEY_Q": "TRIGGER",
		"KEY_Z": "BOGUS_BUTTON",
		"KEY_NOPE": "TRIGGER",
	}}
	resolved := cfg.ResolvedButtonMapping(testLogger())
	require.Len(t, resolved, 1)
	for _, btn := range resolved {
		assert.Equal(t, buttonset.Trigger, btn)
	}
}

func TestRewriteDevicesPreservesOtherSections(t *testing.T) {
	path := writeTemp(t, `[devices]
keyboard=/dev/input/event0
mouse=/dev/input/event1

[sensitivity]
sensitivity=33

[button_mapping]
KEY_Q=TRIGGER
`)

	require.NoError(t, config.RewriteDevices(path, config.Devices{Keyboard: "/dev/input/event9", Mouse: "/dev/input/event10"}))

	cfg, err := config.LoadExplicit(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "/dev/input/event9", cfg.Devices.Keyboard)
	assert.Equal(t, "/dev/input/event10", cfg.Devices.Mouse)
	assert.Equal(t, 33, cfg.Sensitivity)
	assert.Equal(t, "TRIGGER", cfg.ButtonMapping["KEY_Q"])
}

func TestRewriteDevicesCreatesFileWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.ini")
	require.NoError(t, config.RewriteDevices(path, config.Devices{Keyboard: "/dev/input/event2"}))

	cfg, err := config.LoadExplicit(path, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "/dev/input/event2", cfg.Devices.Keyboard)
}
