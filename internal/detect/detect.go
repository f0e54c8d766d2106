// Package detect implements --detect: an interactive picker that lists
// candidate keyboard/pointer devices, lets the user choose one of each,
// and rewrites the config file's [devices] section in place.
package detect

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/riftwheel/g29emu/internal/config"
	"github.com/riftwheel/g29emu/internal/inputdevice"
)

// Run scans for keyboard and pointer candidates, prompts the user to pick
// one of each over stdin/stdout, and writes the result to configPath.
func Run(cfg *config.Config, configPath string, logger *slog.Logger) error {
	fmt.Println("Scanning input devices...")

	keyboards := inputdevice.ScanKeyboards()
	pointers := inputdevice.ScanPointers()

	kbPath, err := pick("keyboard", keyboards)
	if err != nil {
		return err
	}
	ptrPath, err := pick("pointer", pointers)
	if err != nil {
		return err
	}

	devices := config.Devices{Keyboard: kbPath, Mouse: ptrPath}
	if err := config.RewriteDevices(configPath, devices); err != nil {
		return fmt.Errorf("detect: writing config: %w", err)
	}

	logger.Info("devices saved", "path", configPath, "keyboard", kbPath, "pointer", ptrPath)
	return nil
}

func pick(role string, candidates []inputdevice.Candidate) (string, error) {
	if len(candidates) == 0 {
		fmt.Printf("No %s candidates found; leaving empty (auto-discover at runtime).\n", role)
		return "", nil
	}

	fmt.Printf("\nSelect %s device:\n", role)
	for i, c := range candidates {
		fmt.Printf("  %d: %s (%s)\n", i+1, c.Name, c.Path)
	}
	fmt.Printf("  0: none / auto-discover\n")

	for {
		fmt.Printf("> ")
		line, err := readLine()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 || n > len(candidates) {
			fmt.Println("invalid selection, try again")
			continue
		}
		if n == 0 {
			return "", nil
		}
		return candidates[n-1].Path, nil
	}
}

// readLine reads digits up to Enter. When stdin is a terminal it puts the
// terminal in raw mode for the duration of the read so keystrokes are
// echoed and terminated explicitly by this code rather than relying on
// the kernel's line discipline (canonical mode) — the same reason a
// raw-mode picker is used elsewhere for single-keystroke menus. Restores
// the prior terminal state before returning, on every exit path.
func readLine() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return bufio.NewReader(os.Stdin).ReadString('\n')
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("detect: entering raw terminal mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var b strings.Builder
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return "", err
		}
		switch buf[0] {
		case '\r', '\n':
			fmt.Print("\r\n")
			return b.String(), nil
		case 127, '\b': // backspace
			if b.Len() > 0 {
				s := b.String()
				b.Reset()
				b.WriteString(s[:len(s)-1])
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			return "", fmt.Errorf("detect: interrupted")
		default:
			b.WriteByte(buf[0])
			fmt.Printf("%c", buf[0])
		}
	}
}
