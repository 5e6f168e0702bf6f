package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"volumetric-lines/internal/config"
	"volumetric-lines/internal/postprocess"
	"volumetric-lines/internal/scene"
	"volumetric-lines/internal/texture"

	"github.com/HugoSmits86/nativewebp"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Textures    texture.Resolver
	Width       int
	Height      int
	Supersample int
	Workers     int
	ToneMap     bool
	Quiet       bool // no progress output
}

// Result holds the outcome of rendering one scene file.
type Result struct {
	Name     string
	Scene    string // scene file path
	Image    string // output path relative to OutputDir
	Lines    int
	Vertices int
	Success  bool
	Error    string
}

// Run renders all scene files using a worker pool.
func Run(cfg Config, scenes []string) []Result {
	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f scenes/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, path string) Result {
	res := Result{Scene: path}

	sc, err := config.LoadScene(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Name = sc.Name
	res.Image = sc.Name + ".webp"

	s, err := scene.Build(sc, cfg.sceneOptions())
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer s.Destroy()
	res.Lines = len(s.Lines())
	res.Vertices = s.Vertices()

	img := RenderScene(cfg, s)
	if err := WriteWebP(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// sceneOptions sizes the preview for supersampling.
func (cfg Config) sceneOptions() scene.Options {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	return scene.Options{
		Width:    cfg.Width * ss,
		Height:   cfg.Height * ss,
		Textures: cfg.Textures,
		ToneMap:  cfg.ToneMap,
	}
}

// RenderScene renders a scene built with cfg's options and downsamples it
// to the output size.
func RenderScene(cfg Config, s *scene.Scene) *image.NRGBA {
	img := s.Render()
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}
	return img
}

// BuildScene builds sc with the preview sized for cfg.
func BuildScene(cfg Config, sc *config.Scene) (*scene.Scene, error) {
	return scene.Build(sc, cfg.sceneOptions())
}

// WriteWebP encodes img losslessly to path, creating parent directories.
func WriteWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
