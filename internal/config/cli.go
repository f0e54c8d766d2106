package config

// CLI is the kong-parsed command line surface for cmd/g29emu.
type CLI struct {
	Config  string `help:"Path to an explicit config.ini, bypassing the search order." type:"path"`
	Verbose int    `short:"v" type:"counter" help:"Increase log verbosity (-v debug, -vv trace)."`
	Quiet   bool   `short:"q" help:"Only log warnings and errors."`
	Detect  bool   `help:"Interactively pick keyboard/mouse devices and save them to config."`
}

// LevelName derives the log/slog level name from -v/-q flags.
func (c CLI) LevelName() string {
	switch {
	case c.Quiet:
		return "warn"
	case c.Verbose >= 2:
		return "trace"
	case c.Verbose == 1:
		return "debug"
	default:
		return "info"
	}
}
