// Package config loads and writes g29emu's INI configuration file.
//
// No INI-parsing library exists anywhere in the retrieved example corpus —
// the teacher's config stack (go-toml, yaml.v3, kong-toml/kong-yaml) targets
// JSON/YAML/TOML for its network server's subcommands, none of which read
// the bracketed key=value format spec.md's External Interfaces section
// requires. The parser below is hand-rolled, directly grounded on the
// reference implementation's own hand-rolled Config::ParseINI
// (original_source/src/config.cpp), which likewise does not reach for a
// library for this format.
package config

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/riftwheel/g29emu/internal/buttonset"
	"github.com/riftwheel/g29emu/internal/configpaths"
	"github.com/riftwheel/g29emu/internal/keycode"
	"log/slog"
)

const defaultSensitivity = 50

// Devices holds explicit device paths; empty means auto-discover.
type Devices struct {
	Keyboard string
	Mouse    string
}

// Config is the parsed, validated configuration.
type Config struct {
	Devices       Devices
	Sensitivity   int
	ButtonMapping map[string]string // raw KEY_NAME -> VIRTUAL_BUTTON_NAME, as written in the file
}

// ResolvedButtonMapping maps evdev keycodes to wheel button slots, dropping
// any entry whose key or button name is unrecognized (logged at warn).
func (c *Config) ResolvedButtonMapping(logger *slog.Logger) map[int]buttonset.Button {
	out := make(map[int]buttonset.Button, len(c.ButtonMapping))
	for keyName, buttonName := range c.ButtonMapping {
		code, ok := keycode.ByName(keyName)
		if !ok {
			logger.Warn("button_mapping: unknown key name, ignoring", "key", keyName)
			continue
		}
		btn, ok := buttonset.ButtonByName(buttonName)
		if !ok {
			logger.Warn("button_mapping: unknown virtual button name, ignoring", "button", buttonName)
			continue
		}
		out[code] = btn
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		Sensitivity: defaultSensitivity,
		ButtonMapping: map[string]string{
			"KEY_Q": "TRIGGER",
			"KEY_E": "THUMB",
			"KEY_F": "TOP",
			"KEY_G": "TOP2",
			"KEY_H": "BASE",
		},
	}
}

// Load searches configpaths.SearchPaths in order. If none exist, it writes
// a default file to the first writable (user) location and returns built-in
// defaults for the current run (spec.md §6's "Search order").
func Load(logger *slog.Logger) (*Config, error) {
	for _, path := range configpaths.SearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaultConfig()
		parseINI(string(data), cfg, logger)
		logger.Info("loaded config", "path", path)
		return cfg, nil
	}

	cfg := defaultConfig()
	if userPath, err := configpaths.UserConfigPath(); err == nil {
		if err := writeDefault(userPath, cfg); err != nil {
			logger.Warn("failed to write default config", "path", userPath, "error", err)
		} else {
			logger.Info("wrote default config", "path", userPath)
		}
	}
	return cfg, nil
}

// LoadExplicit reads config from exactly the given path, bypassing the
// search order (--config PATH).
func LoadExplicit(path string, logger *slog.Logger) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	parseINI(string(data), cfg, logger)
	return cfg, nil
}

func parseINI(content string, cfg *Config, logger *slog.Logger) {
	section := ""
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if section == "button_mapping" {
				// The file's own mapping replaces the built-in default one.
				cfg.ButtonMapping = map[string]string{}
			}
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])

		switch section {
		case "devices":
			switch key {
			case "keyboard":
				cfg.Devices.Keyboard = value
			case "mouse":
				cfg.Devices.Mouse = value
			default:
				logger.Warn("unknown key in [devices]", "key", key)
			}
		case "sensitivity":
			if key != "sensitivity" {
				logger.Warn("unknown key in [sensitivity]", "key", key)
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				logger.Warn("malformed sensitivity value, using default", "value", value)
				cfg.Sensitivity = defaultSensitivity
				continue
			}
			cfg.Sensitivity = clamp(n, 1, 100)
		case "button_mapping":
			if _, ok := keycode.ByName(key); !ok {
				logger.Warn("button_mapping: unknown key name, ignoring", "key", key)
				continue
			}
			if _, ok := buttonset.ButtonByName(value); !ok {
				logger.Warn("button_mapping: unknown virtual button name, ignoring", "button", value)
				continue
			}
			if cfg.ButtonMapping == nil {
				cfg.ButtonMapping = map[string]string{}
			}
			cfg.ButtonMapping[key] = value
		default:
			logger.Warn("key outside any recognized section", "key", key, "section", section)
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func writeDefault(path string, cfg *Config) error {
	if err := configpaths.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(render(cfg))
	return err
}

func render(cfg *Config) string {
	var b strings.Builder
	b.WriteString("# g29emu configuration\n\n")
	b.WriteString("[devices]\n")
	b.WriteString(fmt.Sprintf("keyboard=%s\n", cfg.Devices.Keyboard))
	b.WriteString(fmt.Sprintf("mouse=%s\n\n", cfg.Devices.Mouse))
	b.WriteString("[sensitivity]\n")
	b.WriteString(fmt.Sprintf("sensitivity=%d\n\n", cfg.Sensitivity))
	b.WriteString("[button_mapping]\n")

	keys := make([]string, 0, len(cfg.ButtonMapping))
	for k := range cfg.ButtonMapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s=%s\n", k, cfg.ButtonMapping[k]))
	}
	return b.String()
}

// RewriteDevices preserves every other section byte-for-byte and replaces
// only the [devices] section's contents, for --detect's one-shot rewrite
// (spec.md §6).
func RewriteDevices(path string, devices Devices) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return writeDefaultDevicesOnly(path, devices)
	}

	lines := strings.Split(string(data), "\n")
	var out []string
	inDevices := false
	wroteDevices := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if inDevices && !wroteDevices {
				out = append(out, fmt.Sprintf("keyboard=%s", devices.Keyboard))
				out = append(out, fmt.Sprintf("mouse=%s", devices.Mouse))
				wroteDevices = true
			}
			inDevices = trimmed == "[devices]"
			if inDevices {
				out = append(out, line)
				out = append(out, fmt.Sprintf("keyboard=%s", devices.Keyboard))
				out = append(out, fmt.Sprintf("mouse=%s", devices.Mouse))
				wroteDevices = true
				continue
			}
			out = append(out, line)
			continue
		}
		if inDevices {
			continue // drop old keyboard=/mouse=/comment lines; already replaced
		}
		out = append(out, line)
	}
	if !wroteDevices {
		out = append(out, "[devices]", fmt.Sprintf("keyboard=%s", devices.Keyboard), fmt.Sprintf("mouse=%s", devices.Mouse))
	}
	return os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o644)
}

func writeDefaultDevicesOnly(path string, devices Devices) error {
	cfg := defaultConfig()
	cfg.Devices = devices
	return writeDefault(path, cfg)
}
