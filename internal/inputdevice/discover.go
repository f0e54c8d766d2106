// Package inputdevice discovers and reads the physical keyboard and pointer
// devices via Linux evdev, presenting them as a dense key-state vector, a
// per-tick pointer delta, and a toggle-chord edge detector.
package inputdevice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	evdev "github.com/gvalkov/golang-evdev"
)

const (
	inputDir      = "/dev/input"
	maxScanDevice = 64
)

// Kind distinguishes the two device roles the daemon discovers.
type Kind int

const (
	KindKeyboard Kind = iota
	KindPointer
)

// Candidate is a scored discovery result.
type Candidate struct {
	Path  string
	Name  string
	Score int
}

// scoreKeyboard and scorePointer implement §4.A's ranked-scan table:
// names containing "keyboard" win for keyboards; "mouse"/"wireless
// device" win for pointers; "touchpad", "synaptics", "elan", or
// "consumer/system control" are strongly deprioritized for either role.
func scoreKeyboard(name string) int {
	lower := strings.ToLower(name)
	score := 0
	if strings.Contains(lower, "keyboard") {
		score += 100
	}
	score += deprioritize(lower)
	return score
}

func scorePointer(name string) int {
	lower := strings.ToLower(name)
	score := 0
	if strings.Contains(lower, "mouse") || strings.Contains(lower, "wireless device") {
		score += 100
	}
	score += deprioritize(lower)
	return score
}

func deprioritize(lowerName string) int {
	for _, bad := range []string{"touchpad", "synaptics", "elan", "consumer control", "system control"} {
		if strings.Contains(lowerName, bad) {
			return -1000
		}
	}
	return 0
}

// scanCandidates opens every /dev/input/eventN device (bounded by
// maxScanDevice), scores it for the given role, and returns candidates
// sorted best-first. Devices that fail to open are skipped, not an error.
func scanCandidates(kind Kind) []Candidate {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil
	}

	var out []Candidate
	seen := 0
	for _, e := range entries {
		if seen >= maxScanDevice {
			break
		}
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, e.Name())
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		name := dev.Name
		dev.File.Close()
		seen++

		var score int
		if kind == KindKeyboard {
			score = scoreKeyboard(name)
		} else {
			score = scorePointer(name)
		}
		out = append(out, Candidate{Path: path, Name: name, Score: score})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// ScanKeyboards lists every discoverable input device scored as a
// keyboard candidate, for --detect's interactive picker.
func ScanKeyboards() []Candidate { return scanCandidates(KindKeyboard) }

// ScanPointers lists every discoverable input device scored as a pointer
// candidate, for --detect's interactive picker.
func ScanPointers() []Candidate { return scanCandidates(KindPointer) }

// Discover resolves the keyboard and pointer device paths to open:
// explicit configuration paths win outright; otherwise the top-scored
// candidate from a ranked scan is used. Returns an error only if neither
// a keyboard nor a pointer could be resolved (§4.A "the pipeline refuses
// to start"); a single resolved device is acceptable.
func Discover(explicitKeyboard, explicitPointer string) (keyboardPath, pointerPath string, err error) {
	keyboardPath = explicitKeyboard
	if keyboardPath == "" {
		if c := scanCandidates(KindKeyboard); len(c) > 0 && c[0].Score > 0 {
			keyboardPath = c[0].Path
		}
	}

	pointerPath = explicitPointer
	if pointerPath == "" {
		if c := scanCandidates(KindPointer); len(c) > 0 && c[0].Score > 0 {
			pointerPath = c[0].Path
		}
	}

	if keyboardPath == "" && pointerPath == "" {
		return "", "", fmt.Errorf("inputdevice: no keyboard or pointer device found under %s", inputDir)
	}
	return keyboardPath, pointerPath, nil
}
