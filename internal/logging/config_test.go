package logging

import "testing"

func TestDefaultConfigByMode(t *testing.T) {
	cli := DefaultConfig(ModeCLI)
	if cli.Sink == nil || Sink(*cli.Sink) != SinkStderr {
		t.Fatalf("cli default sink = %v, want stderr", cli.Sink)
	}
	if cli.Level == nil || *cli.Level != "error" {
		t.Fatalf("cli default level = %v, want error", cli.Level)
	}

	tui := DefaultConfig(ModeTUI)
	if tui.Sink == nil || Sink(*tui.Sink) != SinkFile {
		t.Fatalf("tui default sink = %v, want file", tui.Sink)
	}
	if tui.Format == nil || Format(*tui.Format) != FormatJSON {
		t.Fatalf("tui default format = %v, want json", tui.Format)
	}
}

func TestWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogSink, "none")
	t.Setenv(EnvLogMaxBackups, "9")

	cfg := DefaultConfig(ModeCLI).WithEnv()
	if cfg.Level == nil || *cfg.Level != "debug" {
		t.Fatalf("level = %v, want debug", cfg.Level)
	}
	if cfg.Sink == nil || Sink(*cfg.Sink) != SinkNone {
		t.Fatalf("sink = %v, want none", cfg.Sink)
	}
	if cfg.MaxBackups == nil || *cfg.MaxBackups != 9 {
		t.Fatalf("max backups = %v, want 9", cfg.MaxBackups)
	}
}

func TestNormalizeRejectsInvalid(t *testing.T) {
	bad := "verbose"
	cfg := Config{Level: &bad}
	if _, err := cfg.Normalize(); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	badSink := "syslog"
	cfg = Config{Sink: &badSink}
	if _, err := cfg.Normalize(); err == nil {
		t.Fatalf("expected error for invalid sink")
	}
}

func TestModeFromArgs(t *testing.T) {
	if got := ModeFromArgs([]string{"paneweave"}); got != ModeCLI {
		t.Fatalf("ModeFromArgs(no cmd) = %v, want cli", got)
	}
	if got := ModeFromArgs([]string{"paneweave", "demo"}); got != ModeTUI {
		t.Fatalf("ModeFromArgs(demo) = %v, want tui", got)
	}
	if got := ModeFromArgs([]string{"paneweave", "layouts"}); got != ModeCLI {
		t.Fatalf("ModeFromArgs(layouts) = %v, want cli", got)
	}
}
