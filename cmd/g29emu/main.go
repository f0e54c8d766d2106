// Command g29emu turns a keyboard and pointer into a virtual
// force-feedback racing wheel recognized by games as a Logitech G29-class
// controller.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/riftwheel/g29emu/internal/backend/uhid"
	"github.com/riftwheel/g29emu/internal/config"
	"github.com/riftwheel/g29emu/internal/configpaths"
	"github.com/riftwheel/g29emu/internal/detect"
	"github.com/riftwheel/g29emu/internal/inputdevice"
	wheellog "github.com/riftwheel/g29emu/internal/log"
	"github.com/riftwheel/g29emu/internal/mapper"
	"github.com/riftwheel/g29emu/internal/wheel"
)

const tickInterval = time.Millisecond

// ffbGain is the global FFB scale from configuration (§3 FFBState.ffb_gain,
// invariant 3: set once at startup, read-only thereafter). g29emu does not
// yet expose this as a config key, so it is fixed at unity.
const ffbGain = 1.0

func main() {
	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("g29emu"),
		kong.Description("Emulate a Logitech G29-class force-feedback wheel from a keyboard and mouse."),
		kong.UsageOnError(),
	)

	logger := wheellog.Setup(cli.LevelName())

	var rawLogger wheellog.RawLogger
	if cli.LevelName() == "trace" {
		rawLogger = wheellog.NewRaw(os.Stdout)
	} else {
		rawLogger = wheellog.NewRaw(nil)
	}

	if os.Geteuid() != 0 {
		fatal(logger, "g29emu requires privileged access to /dev/uhid and to grab input devices; run as root")
	}

	var cfg *config.Config
	var err error
	if cli.Config != "" {
		cfg, err = config.LoadExplicit(cli.Config, logger)
	} else {
		cfg, err = config.Load(logger)
	}
	if err != nil {
		fatal(logger, "failed to load configuration: "+err.Error())
	}

	if cli.Detect {
		if err := detect.Run(cfg, resolveConfigPath(cli), logger); err != nil {
			fatal(logger, "device detection failed: "+err.Error())
		}
		return
	}

	keyboardPath, pointerPath, err := inputdevice.Discover(cfg.Devices.Keyboard, cfg.Devices.Mouse)
	if err != nil {
		fatal(logger, "no input devices found: "+err.Error())
	}
	logger.Info("resolved input devices", "keyboard", keyboardPath, "pointer", pointerPath)

	reader, err := inputdevice.Open(keyboardPath, pointerPath, logger)
	if err != nil {
		fatal(logger, "failed to open input devices: "+err.Error())
	}
	defer reader.Close()

	m := mapper.New(cfg, logger)

	b := uhid.New(logger)
	eng := wheel.New(b, reader, cfg.Sensitivity, ffbGain, logger)

	parser := eng.FFBParser(logger, rawLogger)
	b.RegisterFFBCallback(parser.Feed)

	if err := eng.Start(); err != nil {
		fatal(logger, "failed to bind virtual HID device: "+err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	logger.Info("g29emu running; press Ctrl+M to toggle wheel emulation")

	running := true
	for running {
		select {
		case <-sigCh:
			running = false
		default:
		}
		if !running {
			break
		}

		mouseDx := reader.Read()
		toggled := reader.CheckToggle()
		f := m.Map(reader.Keys(), mouseDx, toggled)
		eng.ProcessInputFrame(f)

		time.Sleep(tickInterval)
	}

	logger.Info("shutting down")
	if err := eng.Stop(); err != nil {
		logger.Warn("error during shutdown", "error", err)
	}
}

func fatal(logger *slog.Logger, msg string) {
	logger.Error(msg)
	os.Exit(1)
}

func resolveConfigPath(cli config.CLI) string {
	if cli.Config != "" {
		return cli.Config
	}
	if p, err := configpaths.UserConfigPath(); err == nil {
		return p
	}
	return configpaths.SystemConfigPath
}
