package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidLevel(t *testing.T) {
	for _, lvl := range []string{"none", "normal", "debug"} {
		if !ValidLevel(lvl) {
			t.Errorf("ValidLevel(%q) = false", lvl)
		}
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true")
	}
}

func TestPrepare_FileSink(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "chrome.log")
	conf := Config{
		Console: LoggerConfig{Level: LevelNone},
		File:    LoggerConfig{Level: LevelDebug, Destination: dest, Mode: "overwrite"},
	}
	log, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("mode changed")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "mode changed") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestPrepare_FileWithoutDestination(t *testing.T) {
	conf := Config{File: LoggerConfig{Level: LevelNormal}}
	if _, err := conf.Prepare(); err == nil {
		t.Error("expected error for missing destination")
	}
}

func TestWithoutConsole(t *testing.T) {
	conf := DefaultConfig().WithoutConsole()
	if conf.Console.Level != LevelNone {
		t.Errorf("console level = %q", conf.Console.Level)
	}
	if DefaultConfig().Console.Level != LevelNormal {
		t.Error("WithoutConsole must not mutate the receiver's source")
	}
}
