package logging

import "strings"

type Mode uint8

const (
	ModeCLI Mode = iota + 1
	// ModeTUI is used when the process owns the terminal; logs must not hit
	// stderr or they corrupt the display.
	ModeTUI
)

// ModeFromArgs picks the logging mode from the raw CLI args.
func ModeFromArgs(args []string) Mode {
	if len(args) < 2 {
		return ModeCLI
	}
	cmd := strings.ToLower(strings.TrimSpace(args[1]))
	if cmd == "demo" {
		return ModeTUI
	}
	return ModeCLI
}

func (m Mode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	default:
		return "cli"
	}
}
