package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	if _, err := os.Stat(filepath.Join(configDir, "logs")); os.IsNotExist(err) {
		t.Error("log directory was not created")
	}

	// Exercise each level once against the real writer.
	Debug("debug line")
	Info("info line")
	Warn("warn line", "key", "value")
	Error("error line", "error", os.ErrNotExist)
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}

	Debug("visible in debug mode")
}

func TestHelpersBeforeInit(t *testing.T) {
	Logger = nil

	// Must not panic when nothing is configured yet.
	Debug("early debug")
	Info("early info")
	Warn("early warn")
	Error("early error")
}

func TestInitUnwritableDirectory(t *testing.T) {
	err := Init(Config{ConfigDir: "/proc/no-such-place"})
	if err == nil {
		t.Skip("directory unexpectedly writable on this platform")
	}
}
