package main

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestCreateLogger(t *testing.T) {
	verbose = false
	defer func() { verbose = false }()

	logger := createLogger()
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("default logger drops info-level entries")
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("default logger enables debug-level entries")
	}

	verbose = true
	logger = createLogger()
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose logger drops debug-level entries")
	}
}

func TestModeFlags(t *testing.T) {
	flagBrief = true
	flagCornell = true
	defer func() {
		flagBrief = false
		flagCornell = false
	}()

	flags := modeFlags()
	if !flags.Brief || !flags.Cornell {
		t.Errorf("modeFlags = %+v, want brief and cornell set", flags)
	}
	if flags.Detailed || flags.Mindmap {
		t.Errorf("modeFlags = %+v, carries flags that were not set", flags)
	}
}

func TestRootCommandSurface(t *testing.T) {
	want := []string{"create", "edit", "show", "chat", "list", "config", "tools", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range rootCmd.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
