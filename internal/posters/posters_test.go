package posters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, "/static/posters/")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := store.Save("cover.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(path, "/static/posters/cover_") {
		t.Errorf("path = %q, want prefix /static/posters/cover_", path)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("path = %q, want .jpg extension preserved", path)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(path)))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("saved content = %q, want %q", data, "image-bytes")
	}
}

func TestStore_Save_UniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/posters")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	first, err := store.Save("cover.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save("cover.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Errorf("two uploads of the same filename collided: %q", first)
	}
}
