// Command softrast renders YAML scene files to PNG images.
//
// Usage:
//
//	softrast [flags] scene.yaml...
//
// Each scene renders on its own engine; scenes run concurrently.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/internal/image"
)

func main() {
	var (
		outDir  = flag.String("out", ".", "output directory")
		cores   = flag.Int("cores", runtime.NumCPU(), "rasterizer threads per scene")
		scale   = flag.Int("scale", 0, "render scale override (1-4)")
		frames  = flag.Int("frames", 1, "frames to render per scene, for benchmarking")
		native  = flag.Bool("native", false, "save at 256x192 regardless of scale")
		jobs    = flag.Int("jobs", 2, "scenes rendered at once")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: softrast [flags] scene.yaml...")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *verbose {
		softrast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var bar *progressbar.ProgressBar
	if *frames > 1 {
		bar = progressbar.Default(int64(*frames*flag.NArg()), "rendering")
		defer bar.Close()
	}

	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for _, path := range flag.Args() {
		g.Go(func() error {
			return renderFile(path, *outDir, *cores, *scale, *frames, *native, bar)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("softrast: %v", err)
	}
}

func renderFile(path, outDir string, cores, scale, frames int, native bool, bar *progressbar.ProgressBar) error {
	s, err := LoadScene(path)
	if err != nil {
		return err
	}
	if scale != 0 {
		s.Scale = scale
	}

	var onFrame func()
	if bar != nil {
		onFrame = func() { _ = bar.Add(1) }
	}
	img, err := s.Render(cores, frames, native, onFrame)
	if err != nil {
		return err
	}

	out := filepath.Join(outDir, s.Output)
	if err := image.SavePNG(out, img); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	if bar == nil {
		log.Printf("%s -> %s (%dx%d)", path, out, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return nil
}
