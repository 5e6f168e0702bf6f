package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsSceneFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a.json", true},
		{"dir/b.YAML", true},
		{"c.yml", true},
		{"glow.tga", false},
		{"scene.json~", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsSceneFile(c.path); got != c.want {
			t.Errorf("IsSceneFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestWatcherReportsSceneEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	scene := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scene, []byte("lines: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != scene {
			t.Errorf("event for %q, want %q", got, scene)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
}

func TestWatcherWaitsForLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	scene := filepath.Join(dir, "scene.json")
	full := `{"lines": []}`
	if err := os.WriteFile(scene, []byte(`{"li`), 0644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(Debounce / 5)
	if err := os.WriteFile(scene, []byte(full), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		data, err := os.ReadFile(got)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != full {
			t.Errorf("reported while file held %q", data)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}

	select {
	case got := <-w.Events:
		t.Errorf("second event for %q", got)
	case <-time.After(3 * Debounce):
	}
}

func TestCloseClosesChannels(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	_ = w.Close()

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("unexpected event")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
