//go:build linux && e2e

// Package e2e drives the full daemon against a real /dev/uhid and verifies
// the resulting device is recognized as a joystick from outside the
// process under test, the way the teacher's own Benchmark_Xbox360_Delay
// (testing/e2e/bench_test.go) opens its virtual gamepad through SDL rather
// than asserting on internal state.
//
// Requires G29EMU_E2E=1, root (for /dev/uhid and device grabbing), and a
// machine where SDL can enumerate joysticks (a real or virtual display/
// input stack) — skipped otherwise so `go test ./...` stays hermetic.
package e2e

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/Zyko0/go-sdl3/bin/binsdl"
	"github.com/Zyko0/go-sdl3/sdl"
)

func TestG29EmulatedDeviceIsRecognizedAsJoystick(t *testing.T) {
	if os.Getenv("G29EMU_E2E") != "1" {
		t.Skip("set G29EMU_E2E=1 to run against a real /dev/uhid")
	}
	if os.Geteuid() != 0 {
		t.Skip("requires root for /dev/uhid and device grabbing")
	}

	bin, err := exec.LookPath("g29emu")
	if err != nil {
		t.Skipf("g29emu binary not on PATH: %v", err)
	}

	cmd := exec.Command(bin, "-v")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting g29emu: %v", err)
	}
	defer func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	}()

	defer binsdl.Load().Unload()
	defer sdl.Quit()
	if !sdl.Init(sdl.INIT_JOYSTICK) {
		t.Fatalf("sdl.Init failed")
	}

	var found *sdl.Joystick
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		sdl.UpdateJoysticks()
		ids, _ := sdl.GetJoysticks()
		for _, id := range ids {
			joy, err := id.OpenJoystick()
			if err != nil {
				continue
			}
			name := joy.Name()
			if name != "" {
				found = joy
				break
			}
			joy.Close()
		}
		if found != nil {
			break
		}
		time.Sleep(250 * time.Millisecond)
	}
	if found == nil {
		t.Fatal("no joystick enumerated within the deadline; g29emu's UHID device was not recognized")
	}
	defer found.Close()

	numAxes := found.NumAxes()
	if numAxes < 4 {
		t.Fatalf("expected at least 4 axes (steering, throttle, brake, clutch), got %d", numAxes)
	}

	numButtons := found.NumButtons()
	if numButtons < 1 {
		t.Fatalf("expected at least 1 button, got %d", numButtons)
	}

	sdl.UpdateJoysticks()
	centerSteering := found.Axis(0)
	if centerSteering < -4000 || centerSteering > 4000 {
		t.Fatalf("expected steering axis to be near center at idle, got %d", centerSteering)
	}
}
