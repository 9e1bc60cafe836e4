package template

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	base := `<html><body>{{template "content" .}}</body></html>`
	page := `{{define "content"}}<h1>Hello {{.Name}}</h1>{{end}}`
	standalone := `<p>Standalone {{.Name}}</p>`

	for name, content := range map[string]string{
		"base.html":       base,
		"page.html":       page,
		"standalone.html": standalone,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write template %s: %v", name, err)
		}
	}
	return dir
}

func TestRenderWithBase(t *testing.T) {
	dir := writeTemplates(t)
	r := NewRenderer(dir, "base.html")

	w := httptest.NewRecorder()
	if err := r.RenderWithBase(w, "page.html", map[string]string{"Name": "alice"}); err != nil {
		t.Fatalf("RenderWithBase failed: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h1>Hello alice</h1>") {
		t.Errorf("Page content missing: %q", body)
	}
	if !strings.Contains(body, "<body>") {
		t.Errorf("Base layout missing: %q", body)
	}
}

func TestRenderWithBaseMissingTemplate(t *testing.T) {
	dir := writeTemplates(t)
	r := NewRenderer(dir, "base.html")

	w := httptest.NewRecorder()
	if err := r.RenderWithBase(w, "missing.html", nil); err == nil {
		t.Error("Missing template should return an error")
	}
}

func TestRenderStandalone(t *testing.T) {
	dir := writeTemplates(t)
	r := NewRenderer(dir, "base.html")

	w := httptest.NewRecorder()
	if err := r.RenderStandalone(w, "standalone.html", map[string]string{"Name": "bob"}); err != nil {
		t.Fatalf("RenderStandalone failed: %v", err)
	}
	if !strings.Contains(w.Body.String(), "Standalone bob") {
		t.Errorf("Standalone content missing: %q", w.Body.String())
	}
}

func TestRenderStandaloneEscapes(t *testing.T) {
	dir := writeTemplates(t)
	r := NewRenderer(dir, "base.html")

	w := httptest.NewRecorder()
	if err := r.RenderStandalone(w, "standalone.html", map[string]string{"Name": "<script>"}); err != nil {
		t.Fatalf("RenderStandalone failed: %v", err)
	}
	if strings.Contains(w.Body.String(), "<script>") {
		t.Error("Template output should be HTML-escaped")
	}
}

func TestDefaultRenderer(t *testing.T) {
	dir := writeTemplates(t)
	InitRenderer(dir, "base.html")

	w := httptest.NewRecorder()
	if err := RenderWithBase(w, "page.html", map[string]string{"Name": "carol"}); err != nil {
		t.Fatalf("Default RenderWithBase failed: %v", err)
	}
	if !strings.Contains(w.Body.String(), "carol") {
		t.Errorf("Default renderer output missing: %q", w.Body.String())
	}
}
