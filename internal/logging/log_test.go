package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	oldMode := mode
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		SetLogMode(oldMode)
	})
	return &buf
}

func TestLogMode(t *testing.T) {
	buf := captureLog(t)

	SetLogMode(WarningMode)
	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warningf("warning %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("messages below warning were logged:\n%s", out)
	}
	if !strings.Contains(out, " WARNING warning 3") || !strings.Contains(out, " ERROR error 4") {
		t.Errorf("expected warning and error messages:\n%s", out)
	}

	buf.Reset()
	SetLogMode(SilentMode)
	Criticalf("critical")
	if buf.Len() != 0 {
		t.Errorf("silent mode logged %q", buf.String())
	}
}

func TestTimeLog(t *testing.T) {
	buf := captureLog(t)
	SetLogMode(DebugMode)

	tlog := NewTimeLog()
	tlog.Debugf("wrote %s", "cube.dat")
	if !strings.Contains(buf.String(), " DEBUG wrote cube.dat: ") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]ModeFlag{
		"debug":    DebugMode,
		"":         InfoMode,
		"warn":     WarningMode,
		"critical": CriticalMode,
		"silent":   SilentMode,
	}
	for in, want := range tests {
		if got, ok := ParseMode(in); !ok || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseMode("loud"); ok {
		t.Error("expected unknown level to fail")
	}
}

func TestSetLoggerFile(t *testing.T) {
	captureLog(t)
	oldLogger := logger
	defer func() { logger = oldLogger }()

	path := filepath.Join(t.TempDir(), "export.log")
	c := &Config{Logfile: path, MaxSize: 1, MaxAge: 1, Level: "debug"}
	c.SetLogger()
	Debugf("hello %s", "file")
	Shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), " DEBUG hello file") {
		t.Errorf("log file missing message:\n%s", data)
	}
}
