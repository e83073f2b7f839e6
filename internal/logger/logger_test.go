package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"bogus", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := parseLevel(tc.in); got != tc.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tumble.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = InitWithFileConfig("info", FileConfig{}, false)
	}()

	Info("world created", zap.Int("figures", 5))
	Debug("frame", zap.Int("drawables", 12))
	Named("assets").Warn("texture missing", zap.String("name", "crate"))
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"world created", "figures", "frame", "assets", "texture missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "tumble.log")
	if err := Init("warn", logFile, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = InitWithFileConfig("info", FileConfig{}, false)
	}()

	Info("quiet")
	Error("loud")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if strings.Contains(string(data), "quiet") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(string(data), "loud") {
		t.Error("error message should be written")
	}
}

func TestNoOutputsIsNop(t *testing.T) {
	if err := InitWithFileConfig("debug", FileConfig{}, false); err != nil {
		t.Fatal(err)
	}
	// Must not panic
	Info("discarded")
	Sugar.Infof("discarded %d", 1)
	Sync()
}
