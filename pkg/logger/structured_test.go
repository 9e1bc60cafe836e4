package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// capture redirects the standard logger during a test.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)
	fn()
	return buf.String()
}

func TestInfoFormatsPrefix(t *testing.T) {
	l := NewLogger("web")
	out := capture(t, func() { l.Info("server started") })
	if !strings.Contains(out, "[web] server started") {
		t.Errorf("Expected prefixed message, got %q", out)
	}
}

func TestKeyValuePairs(t *testing.T) {
	l := NewLogger("")
	out := capture(t, func() { l.Info("login", "username", "alice", "ip", "10.0.0.1") })
	if !strings.Contains(out, "username=alice") || !strings.Contains(out, "ip=10.0.0.1") {
		t.Errorf("Expected key=value rendering, got %q", out)
	}
}

func TestDanglingValueKept(t *testing.T) {
	l := NewLogger("")
	out := capture(t, func() { l.Warning("odd args", "leftover") })
	if !strings.Contains(out, "leftover") {
		t.Errorf("Dangling value should still appear, got %q", out)
	}
}

func TestErrorAppendsError(t *testing.T) {
	l := NewLogger("")
	out := capture(t, func() {
		l.Error("query failed", errTest, "table", "users")
	})
	if !strings.Contains(out, "error=boom") {
		t.Errorf("Expected error detail, got %q", out)
	}
	if !strings.Contains(out, "table=users") {
		t.Errorf("Expected kv detail, got %q", out)
	}
}

func TestErrorWithoutError(t *testing.T) {
	l := NewLogger("")
	out := capture(t, func() { l.Error("plain failure", nil) })
	if strings.Contains(out, "error=") {
		t.Errorf("Nil error should not render, got %q", out)
	}
}

func TestSecurityMarksEvent(t *testing.T) {
	l := NewLogger("")
	out := capture(t, func() { l.Security("Failed login", "username", "alice") })
	if !strings.Contains(out, "SECURITY: Failed login") {
		t.Errorf("Expected security marker, got %q", out)
	}
}

func TestDebugSuppressedOutsideDevelopment(t *testing.T) {
	l := &Logger{debug: false}
	out := capture(t, func() { l.Debug("noisy detail") })
	if out != "" {
		t.Errorf("Debug should be silent, got %q", out)
	}

	l = &Logger{debug: true}
	out = capture(t, func() { l.Debug("noisy detail") })
	if !strings.Contains(out, "noisy detail") {
		t.Errorf("Debug should log in development, got %q", out)
	}
}

func TestDefaultConvenienceFunctions(t *testing.T) {
	out := capture(t, func() { Success("done") })
	if !strings.Contains(out, "done") {
		t.Errorf("Package-level Success should log, got %q", out)
	}
}

var errTest = errBoom{}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
