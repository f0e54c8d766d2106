// Package loopback provides an in-memory Backend implementation for tests:
// it records reports instead of talking to a kernel device, and lets tests
// inject FFB packets directly.
package loopback

import (
	"sync"

	"github.com/riftwheel/g29emu/internal/backend"
)

// Backend is a test double satisfying backend.Backend.
type Backend struct {
	mu          sync.Mutex
	reports     []backend.Report
	ffbCallback backend.FFBCallback
	initialized bool
	shutdown    bool
}

// New returns a fresh loopback backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

func (b *Backend) Update(r backend.Report) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reports = append(b.reports, r)
	return nil
}

func (b *Backend) RegisterFFBCallback(cb backend.FFBCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ffbCallback = cb
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = true
	return nil
}

// Reports returns a copy of every report recorded so far, in order.
func (b *Backend) Reports() []backend.Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]backend.Report, len(b.reports))
	copy(out, b.reports)
	return out
}

// LastReport returns the most recently recorded report and true, or the
// zero value and false if none has been recorded yet.
func (b *Backend) LastReport() (backend.Report, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.reports) == 0 {
		return backend.Report{}, false
	}
	return b.reports[len(b.reports)-1], true
}

// InjectFFB simulates the HID backend delivering a raw FFB packet from the
// host, as a test would.
func (b *Backend) InjectFFB(data []byte) {
	b.mu.Lock()
	cb := b.ffbCallback
	b.mu.Unlock()
	if cb != nil {
		cb(data)
	}
}

// Initialized reports whether Initialize has been called.
func (b *Backend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// ShutdownCalled reports whether Shutdown has been called.
func (b *Backend) ShutdownCalled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown
}
