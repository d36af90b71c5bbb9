package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/objmesh/pkg/formats"
)

const triangleOBJ = "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestManager_LoadCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", triangleOBJ)

	m := NewManager(nil)
	defer m.Close()
	if err := m.AddSearchPath(dir); err != nil {
		t.Fatalf("AddSearchPath failed: %v", err)
	}

	first, err := m.Load("tri.obj")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := m.Load("tri.obj")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if string(first) != triangleOBJ || string(second) != triangleOBJ {
		t.Errorf("unexpected content %q / %q", first, second)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d hits, %d misses", hits, misses)
	}
}

func TestManager_SearchPriority(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, low, "model.obj", "v 0 0 0\n")
	writeFile(t, high, "model.obj", "v 1 1 1\nv 2 2 2\n")

	m := NewManager(nil)
	defer m.Close()
	m.AddSearchPath(low)
	m.AddSearchPath(high)

	resolved, err := m.Resolve("model.obj")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if filepath.Dir(resolved) != high {
		t.Errorf("expected last added search path to win, got %s", resolved)
	}
}

func TestManager_Resolve(t *testing.T) {
	dir := t.TempDir()
	abs := writeFile(t, dir, "sub/part.obj", triangleOBJ)

	m := NewManager(nil)
	defer m.Close()
	m.AddSearchPath(dir)

	if got, err := m.Resolve("sub/part.obj"); err != nil || got != abs {
		t.Errorf("Resolve(relative) = %q, %v; expected %q", got, err, abs)
	}
	if got, err := m.Resolve(abs); err != nil || got != abs {
		t.Errorf("Resolve(absolute) = %q, %v; expected %q", got, err, abs)
	}
	if _, err := m.Resolve("missing.obj"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Resolve(filepath.Join(dir, "missing.obj")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absolute path, got %v", err)
	}
	if _, err := m.Resolve("sub"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected directories not to resolve, got %v", err)
	}
}

func TestManager_AddSearchPathInvalid(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	if err := m.AddSearchPath("/nonexistent/models"); err == nil {
		t.Error("expected error for missing directory")
	}

	file := writeFile(t, t.TempDir(), "x.obj", triangleOBJ)
	if err := m.AddSearchPath(file); err == nil {
		t.Error("expected error for non-directory search path")
	}
}

func TestManager_LoadDecodesBOM(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bom.obj", "\xEF\xBB\xBF"+triangleOBJ)

	m := NewManager(nil)
	defer m.Close()
	m.AddSearchPath(dir)

	data, err := m.Load("bom.obj")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != triangleOBJ {
		t.Errorf("expected BOM to be stripped, got %q", data)
	}
}

func TestManager_LoadOBJ(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.obj", triangleOBJ)
	writeFile(t, dir, "bad.obj", "v 0 0 0\nf 1\n")

	core, logs := observer.New(zapcore.DebugLevel)
	m := NewManager(zap.New(core))
	defer m.Close()
	m.AddSearchPath(dir)

	obj, err := m.LoadOBJ("tri.obj", formats.OBJOptions{})
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if obj.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", obj.TriangleCount())
	}

	loaded := logs.FilterMessage("model loaded").All()
	if len(loaded) != 1 {
		t.Fatalf("expected 1 'model loaded' entry, got %d", len(loaded))
	}
	if got := loaded[0].ContextMap()["triangles"]; got != int64(1) {
		t.Errorf("expected triangles=1 field, got %v", got)
	}

	_, err = m.LoadOBJ("bad.obj", formats.OBJOptions{})
	if !errors.Is(err, formats.ErrTooFewFaceVertices) {
		t.Errorf("expected ErrTooFewFaceVertices, got %v", err)
	}
	if logs.FilterMessage("parse failed").Len() != 1 {
		t.Error("expected a 'parse failed' log entry")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("a"); ok {
		t.Error("expected miss on empty cache")
	}
	c.Set("a", []byte("data"))
	if data, ok := c.Get("a"); !ok || string(data) != "data" {
		t.Errorf("expected hit with 'data', got %q (ok=%v)", data, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1/1, got %d/%d", hits, misses)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Error("expected empty cache after Clear")
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d/%d", hits, misses)
	}
}
