package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// scenesDir holds YAML/JSON scenes that can be selected by name
const scenesDir = "scenes"

type options struct {
	sceneType string
	width     int
	height    int
	samples   int
	noJitter  bool
	seed      int64
	workers   int
	gamma     float64
	out       string
	thumbnail uint
	s3Bucket  string
	s3Prefix  string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneType, "scene", "default", "Built-in scene name, scene file name in scenes/, or path to a .yaml/.json scene")
	flag.IntVar(&opts.width, "width", 200, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 100, "Image height in pixels")
	flag.IntVar(&opts.samples, "samples", 100, "Samples per pixel")
	flag.BoolVar(&opts.noJitter, "no-jitter", false, "Sample pixel corners instead of random sub-pixel positions")
	flag.Int64Var(&opts.seed, "seed", 42, "Base random seed")
	flag.IntVar(&opts.workers, "workers", 0, "Concurrent rows (0 = number of CPUs)")
	flag.Float64Var(&opts.gamma, "gamma", output.DefaultGamma, "Display gamma applied when saving")
	flag.StringVar(&opts.out, "out", "", "Output file; format from extension (default output/<scene>/render_<timestamp>.png)")
	flag.UintVar(&opts.thumbnail, "thumbnail", 0, "Also save a thumbnail this many pixels wide")
	flag.StringVar(&opts.s3Bucket, "s3-bucket", "", "Upload the render to this S3 bucket (credentials from S3_* environment)")
	flag.StringVar(&opts.s3Prefix, "s3-prefix", "", "Key prefix for S3 uploads")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	defer glog.Flush()
	glog.CopyStandardLogTo("INFO")

	// .env is optional
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		glog.Exitf("%v", err)
	}
}

func printHelp() {
	fmt.Println("Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, b := range scene.Builtins() {
		fmt.Printf("  %-14s %s\n", b.ID, b.Description)
	}
	if files, err := scene.ListSceneFiles(scenesDir); err == nil {
		for _, f := range files {
			fmt.Printf("  %-14s %s\n", strings.TrimPrefix(f.ID, "file:"), f.DisplayName)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, opts options) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d: %w", opts.width, opts.height, renderer.ErrInvalidDimensions)
	}
	aspect := float32(opts.width) / float32(opts.height)

	selectedScene, err := createScene(opts.sceneType, aspect)
	if err != nil {
		return fmt.Errorf("while creating scene: %w", err)
	}

	config := renderer.SamplingConfig{
		SamplesPerPixel: opts.samples,
		Jitter:          !opts.noJitter,
		Seed:            opts.seed,
		NumWorkers:      opts.workers,
	}
	r, err := renderer.NewRenderer(selectedScene, opts.width, opts.height, config, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("while creating renderer: %w", err)
	}

	img, stats, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("while rendering: %w", err)
	}
	glog.Infof("Rendered %d pixels, %d samples in %v", stats.TotalPixels, stats.TotalSamples, stats.Elapsed)

	outPath := opts.out
	if outPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outPath = filepath.Join(createOutputDir(opts.sceneType), fmt.Sprintf("render_%s.png", timestamp))
	}
	format, err := output.FormatFromFilename(outPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("while creating output directory: %w", err)
	}

	gamma := float32(opts.gamma)
	if err := output.Save(outPath, img, gamma); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", outPath)
	written := []string{outPath}

	if opts.thumbnail > 0 {
		thumbPath := thumbnailPath(outPath)
		thumb := output.Thumbnail(output.ToNRGBA(img, gamma), opts.thumbnail)
		if err := output.SaveImage(thumbPath, thumb); err != nil {
			return err
		}
		glog.Infof("Thumbnail saved as %s", thumbPath)
		written = append(written, thumbPath)
	}

	if opts.s3Bucket != "" {
		cfg := output.S3ConfigFromEnv()
		cfg.Bucket = opts.s3Bucket
		cfg.Prefix = opts.s3Prefix
		uploader, err := output.NewS3Uploader(cfg)
		if err != nil {
			return err
		}
		if err := uploadFiles(ctx, uploader, written, output.ContentType(format)); err != nil {
			return err
		}
	}

	return nil
}

// createScene resolves a built-in scene name, a scene file name in scenes/, or a scene file path
func createScene(sceneType string, aspect float32) (*scene.Scene, error) {
	s, err := scene.ByName(sceneType, aspect)
	if err == nil {
		return s, nil
	}

	if path := findSceneFile(sceneType); path != "" {
		return loaders.LoadScene(path, aspect)
	}

	return nil, fmt.Errorf("unknown scene %q (try -help for the list)", sceneType)
}

// findSceneFile returns the scene file sceneType refers to, or "" if there is none
func findSceneFile(sceneType string) string {
	if sceneType == "" {
		return ""
	}

	var candidates []string
	if scene.IsSceneFile(sceneType) {
		candidates = append(candidates, sceneType)
	} else {
		for _, ext := range []string{".yaml", ".yml", ".json"} {
			candidates = append(candidates, filepath.Join(scenesDir, sceneType+ext))
		}
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// createOutputDir returns output/<scene name>, using the file name for scene file paths
func createOutputDir(sceneType string) string {
	base := filepath.Base(sceneType)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// thumbnailPath inserts _thumb before the extension
func thumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_thumb" + ext
}

type uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

func uploadFiles(ctx context.Context, u uploader, paths []string, contentType string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("while reading %s for upload: %w", path, err)
		}
		if err := u.Upload(ctx, filepath.Base(path), data, contentType); err != nil {
			return err
		}
		glog.Infof("Uploaded %s (%d bytes)", path, len(data))
	}
	return nil
}
