package ffb

import (
	"log/slog"
	"sync"

	wheellog "github.com/riftwheel/g29emu/internal/log"
)

// Parser decodes the canonical FFB command stream (§4.C) into FFBState
// updates. Commands arrive on whatever context the HID backend delivers
// them on — for UHID this is the backend's own read goroutine, which is
// why Parser never calls back into the backend: it only takes the state
// mutex, mutates, and signals the physics loop's condition variable.
type Parser struct {
	mu     *sync.Mutex
	cond   *sync.Cond
	state  *State
	logger *slog.Logger
	raw    wheellog.RawLogger
}

// New builds a Parser sharing the engine's state mutex and condition
// variable. mu must be the same mutex cond was created from.
func New(mu *sync.Mutex, cond *sync.Cond, state *State, logger *slog.Logger, raw wheellog.RawLogger) *Parser {
	if raw == nil {
		raw = wheellog.NewRaw(nil)
	}
	return &Parser{mu: mu, cond: cond, state: state, logger: logger, raw: raw}
}

// Feed decodes one packet. Short packets are discarded; unrecognized
// opcodes are silently ignored, per spec.
func (p *Parser) Feed(data []byte) {
	p.raw.Log(data)

	if len(data) == 0 {
		return
	}

	p.mu.Lock()
	changed := false
	switch data[0] {
	case 0x11:
		if len(data) < 3 {
			p.mu.Unlock()
			p.logger.Debug("ffb: short constant-force packet dropped", "len", len(data))
			return
		}
		centered := int32(data[2]) - 0x80
		preclamp := -centered * 48
		force := clampI16(preclamp, ForceMin, ForceMax)
		if int32(force) != preclamp {
			p.logger.Debug("ffb: constant force clamped", "preclamp", preclamp, "clamped", force)
		}
		if p.state.Force != force {
			p.state.Force = force
			changed = true
		}

	case 0x13:
		if p.state.Force != 0 {
			p.state.Force = 0
			changed = true
		}

	case 0x14:
		if p.state.Autocenter == 0 {
			p.state.Autocenter = 1024
			changed = true
		}

	case 0xF5:
		if p.state.Autocenter != 0 {
			p.state.Autocenter = 0
			changed = true
		}

	case 0xFE:
		if len(data) < 3 || data[1] != 0x0D {
			p.mu.Unlock()
			p.logger.Debug("ffb: short or malformed autocenter packet dropped", "len", len(data))
			return
		}
		preclamp := int32(data[2]) * 16
		ac := clampI16(preclamp, 0, 32767)
		if int32(ac) != preclamp {
			p.logger.Debug("ffb: autocenter clamped", "preclamp", preclamp, "clamped", ac)
		}
		if p.state.Autocenter != ac {
			p.state.Autocenter = ac
			changed = true
		}

	default:
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	if changed {
		p.cond.Signal()
	}
}
