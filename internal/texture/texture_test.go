package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultGlow(t *testing.T) {
	img := DefaultGlow(33)
	if img.Bounds().Dx() != 33 {
		t.Fatalf("size = %v", img.Bounds())
	}
	center := img.NRGBAAt(16, 16).A
	edge := img.NRGBAAt(16, 0).A
	corner := img.NRGBAAt(0, 0).A
	if center != 255 {
		t.Errorf("center alpha = %d, want 255", center)
	}
	if edge != 0 || corner != 0 {
		t.Errorf("edge alpha = %d, corner alpha = %d, want 0", edge, corner)
	}
	if img.NRGBAAt(16, 8).A <= img.NRGBAAt(16, 4).A {
		t.Error("falloff is not monotonic towards the centre")
	}
	if DefaultGlow(0).Bounds().Dx() != 2 {
		t.Error("tiny sizes not clamped")
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "beam.png")
	writePNG(t, path, color.NRGBA{10, 20, 30, 40})

	img, err := LoadTexture(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("pixel = %+v", got)
	}

	if _, err := LoadTexture(filepath.Join(dir, "beam.bmp")); err == nil {
		t.Error("unsupported extension accepted")
	}
	if _, err := LoadTexture(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file accepted")
	}
	bad := filepath.Join(dir, "bad.tga")
	if err := os.WriteFile(bad, []byte("not a tga"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(bad); err == nil {
		t.Error("corrupt tga accepted")
	}
}

func TestIndexAndCache(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "lines")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(sub, "Laser.png"), color.NRGBA{255, 0, 0, 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	idx := BuildIndex(dir)
	if idx.Len() != 1 {
		t.Fatalf("indexed %d textures, want 1", idx.Len())
	}
	if _, ok := idx.ResolvePath(`materials\laser.tga`); !ok {
		t.Error("stem lookup failed")
	}

	fallback := DefaultGlow(4)
	c := NewCache(idx, fallback)
	var wg sync.WaitGroup
	results := make([]*image.NRGBA, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Resolve("laser")
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r == nil || r == fallback || r != results[0] {
			t.Fatalf("resolve %d returned %p", i, r)
		}
	}
	if c.Resolve("unknown") != fallback || c.Resolve("") != fallback {
		t.Error("unknown names must fall back")
	}
	if BuildIndex("").Len() != 0 {
		t.Error("empty dir produced entries")
	}
}
