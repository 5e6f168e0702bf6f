package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"volumetric-lines/internal/batch"
	"volumetric-lines/internal/config"
	"volumetric-lines/internal/line"
	"volumetric-lines/internal/scene"
	"volumetric-lines/internal/texture"
	"volumetric-lines/internal/watch"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .yaml)")
	sceneDir := flag.String("scenes", "", "Directory of scene files (default: .)")
	textureDir := flag.String("textures", "", "Directory searched for template textures")
	outputDir := flag.String("output", "", "Output directory (default: <scenes>/renders)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	size := flag.Int("size", 0, "Output width and height in pixels (default: 256)")
	watchMode := flag.Bool("watch", false, "Re-render scenes whenever their files change")
	verbose := flag.Bool("v", false, "Log rejected line edits to stderr")

	flag.Parse()

	if *verbose {
		line.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		SceneDir:   *sceneDir,
		TextureDir: *textureDir,
		OutputDir:  *outputDir,
		Workers:    *workers,
		Size:       *size,
	})

	scenes := flag.Args()
	if len(scenes) == 0 {
		var err error
		scenes, err = findScenes(cfg.SceneDir, *configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
	}
	if len(scenes) == 0 {
		fmt.Println("No scenes to render.")
		os.Exit(0)
	}

	// Build texture index
	var texIndex *texture.Index
	if cfg.TextureDir != "" {
		texIndex = texture.BuildIndex(cfg.TextureDir)
		fmt.Printf("Textures: %d indexed\n", texIndex.Len())
	}
	texCache := texture.NewCache(texIndex, texture.DefaultGlow(64))

	fmt.Println("Volumetric line preview → WebP")
	fmt.Printf("Scenes: %d, Workers: %d, Size: %dx%d (x%d)\n", len(scenes), cfg.Workers, cfg.Width, cfg.Height, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Textures:    texCache,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		ToneMap:     !cfg.NoToneMap,
	}

	results := batch.Run(batchCfg, scenes)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errs []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errs = append(errs, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(scenes))

	if len(errs) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errs) < limit {
			limit = len(errs)
		}
		for _, e := range errs[:limit] {
			fmt.Printf("  %s: %s\n", e.Scene, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if *watchMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := watchScenes(ctx, batchCfg, scenes); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// findScenes lists the scene files in dir, skipping the config file.
func findScenes(dir, configFile string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	skip := ""
	if configFile != "" {
		skip, _ = filepath.Abs(configFile)
	}
	var scenes []string
	for _, e := range entries {
		if e.IsDir() || !watch.IsSceneFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if abs, _ := filepath.Abs(path); abs == skip {
			continue
		}
		scenes = append(scenes, path)
	}
	sort.Strings(scenes)
	return scenes, nil
}

// watchScenes keeps every scene live and re-renders it on each edit.
// Control point and material edits go through the behaviours in place;
// structural edits rebuild the scene.
func watchScenes(ctx context.Context, cfg batch.Config, paths []string) error {
	live := make(map[string]*scene.Scene, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		live[abs] = nil
		dirs[filepath.Dir(abs)] = true
	}

	var watched []string
	for d := range dirs {
		watched = append(watched, d)
	}
	w, err := watch.New(watched...)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("Watching %d scene(s), Ctrl+C to stop\n", len(live))
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Warning: watch: %v\n", err)
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			s, tracked := live[path]
			if !tracked {
				continue
			}
			s, err := rerender(cfg, path, s)
			if err != nil {
				fmt.Printf("  %s: %v\n", filepath.Base(path), err)
				continue
			}
			live[path] = s
		}
	}
}

func rerender(cfg batch.Config, path string, s *scene.Scene) (*scene.Scene, error) {
	sc, err := config.LoadScene(path)
	if err != nil {
		return s, err
	}

	mode := "updated"
	if s == nil {
		s, err = batch.BuildScene(cfg, sc)
		mode = "built"
	} else if err = s.Apply(sc); errors.Is(err, scene.ErrTopologyChanged) {
		s.Destroy()
		s, err = batch.BuildScene(cfg, sc)
		mode = "rebuilt"
	}
	if err != nil {
		return nil, err
	}

	out := filepath.Join(cfg.OutputDir, sc.Name+".webp")
	if err := batch.WriteWebP(out, batch.RenderScene(cfg, s)); err != nil {
		return s, err
	}
	fmt.Printf("  %s: %s, %d vertices → %s\n", filepath.Base(path), mode, s.Vertices(), out)
	return s, nil
}
