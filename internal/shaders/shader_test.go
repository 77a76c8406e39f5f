package shaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinSources(t *testing.T) {
	for _, name := range []string{
		PointVertexPath,
		PointFragmentPath,
		BackgroundVertexPath,
		BackgroundFragmentPath,
	} {
		src, err := Source("", name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Fatalf("%s: expected a 4.1 core shader", name)
		}
	}
}

func TestSourceFromDir(t *testing.T) {
	dir := t.TempDir()
	want := "#version 410 core\nvoid main() {}\n"
	if err := os.WriteFile(filepath.Join(dir, PointFragmentPath), []byte(want), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Source(dir, PointFragmentPath)
	if err != nil || got != want {
		t.Fatalf("expected override source, got %q (%v)", got, err)
	}
	if _, err := Source(dir, PointVertexPath); err == nil {
		t.Fatalf("expected error for a missing override")
	}
}
