// Package uhid implements the HID backend contract over Linux's /dev/uhid
// character device, presenting the emulated wheel to the kernel as a
// Logitech G29-class joystick (vendor 0x046d, product 0xc24f) — chosen
// over generic uinput because UHID lets the device advertise an exact HID
// report descriptor rather than one the kernel synthesizes from evdev
// capability bits.
package uhid

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/riftwheel/g29emu/internal/backend"
	"github.com/riftwheel/g29emu/internal/hidreport"
)

const devUHID = "/dev/uhid"

// Logitech G29 USB identity.
const (
	vendorLogitech  = 0x046d
	productG29      = 0xc24f
	deviceVersion   = 0x0111
	deviceDisplayNm = "Logitech G29 Driving Force Racing Wheel"
)

// Backend talks the UHID wire protocol directly; it does not depend on any
// evdev/uinput translation layer, since UHID reports are delivered to the
// kernel verbatim.
type Backend struct {
	fd     int
	logger *slog.Logger

	writeMu sync.Mutex

	cbMu sync.Mutex
	cb   backend.FFBCallback

	stopCh chan struct{}
	doneCh chan struct{}
}

// New returns an unopened Backend; call Initialize to bind the device.
func New(logger *slog.Logger) *Backend {
	return &Backend{logger: logger, fd: -1}
}

func (b *Backend) Initialize() error {
	fd, err := unix.Open(devUHID, unix.O_RDWR|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return fmt.Errorf("uhid: open %s: %w", devUHID, err)
	}
	b.fd = fd

	descriptor, err := hidreport.BuildG29Descriptor()
	if err != nil {
		unix.Close(fd)
		return fmt.Errorf("uhid: build report descriptor: %w", err)
	}

	create := buildCreate2(deviceDisplayNm, descriptor, vendorLogitech, productG29, deviceVersion)
	if err := b.write(create); err != nil {
		unix.Close(fd)
		return fmt.Errorf("uhid: create device: %w", err)
	}

	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	go b.readLoop()

	return nil
}

func (b *Backend) write(event []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	_, err := unix.Write(b.fd, event)
	return err
}

// readLoop polls the device fd with a short timeout rather than blocking
// indefinitely in read(), so Shutdown's stop signal is observed promptly
// even if the host never sends an FFB packet.
func (b *Backend) readLoop() {
	defer close(b.doneCh)
	buf := make([]byte, eventSize)
	pfd := []unix.PollFd{{Fd: int32(b.fd), Events: unix.POLLIN}}

	for {
		select {
		case <-b.stopCh:
			return
		default:
		}

		n, err := unix.Poll(pfd, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			b.logger.Debug("uhid poll error", "error", err)
			return
		}
		if n == 0 || pfd[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err = unix.Read(b.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			b.logger.Debug("uhid read error", "error", err)
			return
		}
		if n < 4 {
			continue
		}

		evType := le32(buf[0:4])
		switch evType {
		case evOutput:
			data := parseOutput(buf[4:])
			b.cbMu.Lock()
			cb := b.cb
			b.cbMu.Unlock()
			if cb != nil && len(data) > 0 {
				cb(data)
			}
		case evStart, evStop, evOpen, evClose:
			// no action required; the kernel drives these lifecycle events.
		}
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (b *Backend) Update(r backend.Report) error {
	data := hidreport.EncodeInputReport(r.SteeringNormalized, r.Throttle, r.Brake, r.Clutch, r.Buttons, r.DpadX, r.DpadY)
	return b.write(buildInput2(data))
}

func (b *Backend) RegisterFFBCallback(cb backend.FFBCallback) {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.cb = cb
}

func (b *Backend) Shutdown() error {
	if b.fd < 0 {
		return nil
	}
	if b.stopCh != nil {
		close(b.stopCh)
		<-b.doneCh
	}
	_ = b.write(buildDestroy())
	err := unix.Close(b.fd)
	b.fd = -1
	return err
}
