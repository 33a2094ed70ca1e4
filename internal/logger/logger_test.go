package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"DEBUG":    zap.DebugLevel,
		"info":     zap.InfoLevel,
		"WARNING":  zap.WarnLevel,
		"warn":     zap.WarnLevel,
		"ERROR":    zap.ErrorLevel,
		"CRITICAL": zap.DPanicLevel,
		"":         zap.InfoLevel,
		"verbose":  zap.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewStdoutJSON(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	var buf bytes.Buffer
	log, err := New(Options{Level: "WARNING", Out: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Infow("dropped", "k", 1)
	log.Warnw("kept", "environment", "qa")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "kept" || rec["level"] != "warn" || rec["environment"] != "qa" {
		t.Errorf("record = %v", rec)
	}
}

func TestNewFileSink(t *testing.T) {
	defer zap.ReplaceGlobals(zap.NewNop())

	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(Options{Level: "INFO", Dir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Infow("to file")
	_ = log.Sync()

	name := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("log file = %q", data)
	}
}
