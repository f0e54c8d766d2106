// Package backend declares the contract the wheel state engine uses to talk
// to a virtual HID device, independent of the platform mechanism (kernel
// UHID, USB-gadget, user-space vJoy) that actually presents it to the OS.
package backend

// Report is a single normalized input report, as produced by the wheel
// state engine's report emission step.
type Report struct {
	SteeringNormalized float32 // [-1, +1]
	Throttle           float32 // [0, 1]
	Brake              float32 // [0, 1]
	Clutch             float32 // [0, 1]
	Buttons            []uint8 // 0 or 1 per slot
	DpadX              int8
	DpadY              int8
}

// FFBCallback is invoked whenever the backend receives a raw FFB packet
// from the host. It must never call back into Backend.Update — doing so
// risks deadlock on backends whose callback runs synchronous with writes.
type FFBCallback func(data []byte)

// Backend is the virtual-HID contract consumed by the wheel state engine.
// Implementations: internal/backend/uhid (Linux /dev/uhid) and
// internal/backend/loopback (in-memory, for tests).
type Backend interface {
	// Initialize binds the virtual device, presenting it to the OS as a
	// Logitech G29-class joystick.
	Initialize() error

	// Update publishes a single input report. Idempotent for unchanged state.
	Update(r Report) error

	// RegisterFFBCallback installs the callback invoked for FFB packets
	// arriving from the host. Must be called before Initialize returns
	// control to callers that expect FFB delivery.
	RegisterFFBCallback(cb FFBCallback)

	// Shutdown releases the device. Safe to call more than once.
	Shutdown() error
}
