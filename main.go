package main

import (
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// cliOptions holds the flags that are not render settings
type cliOptions struct {
	scene          string
	cameraPosition string
	focusPoint     string
	output         string
	settingsPath   string
	assetDir       string
	printSettings  bool
	saveSettings   bool
	seed           int64
	workers        int
	verbose        bool

	// Flag targets for settings, copied over only when set
	width, height, samples, maxDepth int
	fov, defocusAngle, focusDistance float64
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	defaults := renderer.DefaultRenderSettings()

	cmd := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Software path tracer",
		Long:          "Renders one of the built-in scenes to a PNG file.\n\nScenes: " + strings.Join(scene.IDs(), ", "),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.scene, "scene", "s", "cornell-box", "Scene to render")
	flags.StringVarP(&opts.cameraPosition, "camera-position", "c", "", "Camera position as x,y,z (defaults to the scene's preset)")
	flags.StringVarP(&opts.focusPoint, "focus-point", "f", "", "Point the camera looks at as x,y,z (defaults to the scene's preset)")
	flags.IntVarP(&opts.width, "width", "w", defaults.Width, "Render width in pixels")
	flags.IntVar(&opts.height, "height", defaults.Height, "Render height in pixels")
	flags.IntVarP(&opts.samples, "samples", "n", defaults.Samples, "Samples per pixel")
	flags.IntVar(&opts.maxDepth, "max-depth", defaults.MaxDepth, "Maximum ray bounce depth")
	flags.Float64Var(&opts.fov, "fov", defaults.FieldOfView, "Vertical field of view in degrees (defaults to the scene's preset)")
	flags.Float64Var(&opts.defocusAngle, "defocus-angle", defaults.DefocusAngle, "Aperture cone angle in degrees, 0 for a pinhole camera")
	flags.Float64Var(&opts.focusDistance, "focus-distance", defaults.FocusDistance, "Distance to the plane in focus, 0 to focus on the focus point")
	flags.StringVarP(&opts.output, "output", "o", "render.png", "Output PNG file")
	flags.BoolVarP(&opts.printSettings, "print-settings", "p", false, "Print the settings as TOML and exit")
	flags.StringVar(&opts.settingsPath, "settings", "", "Settings file to start from (default is the user config dir)")
	flags.BoolVar(&opts.saveSettings, "save-settings", false, "Save the resolved settings to the settings file")
	flags.StringVar(&opts.assetDir, "assets", scene.DefaultAssetDir, "Directory holding image textures")
	flags.Int64Var(&opts.seed, "seed", 0, "Random seed, 0 for a different image every run")
	flags.IntVar(&opts.workers, "workers", 0, "Number of render workers, 0 for one per CPU")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, opts *cliOptions, stdout, stderr io.Writer) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slogger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logger := core.NewSlogLogger(slogger)

	settings, entry, err := resolveSettings(cmd, opts, logger)
	if err != nil {
		return err
	}

	if opts.printSettings {
		data, err := config.Encode(settings)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	if opts.saveSettings {
		path, err := config.Save(opts.settingsPath, settings)
		if err != nil {
			return err
		}
		slogger.Info("saved settings", "path", path)
	}

	output, err := homedir.Expand(opts.output)
	if err != nil {
		return fmt.Errorf("expanding output path: %w", err)
	}

	world := entry.NewWorld(scene.BuildOptions{
		Sampler:  core.NewSeededSampler(opts.seed),
		Logger:   logger,
		AssetDir: opts.assetDir,
	})
	slogger.Debug("built scene", "scene", entry.ID, "camera", settings.CameraPosition, "focus", settings.FocusPoint)

	bar := newProgressBar(stderr)
	start := time.Now()
	raster, stats, err := renderer.Render(world, settings, renderer.RenderOptions{
		NumWorkers: opts.workers,
		Seed:       opts.seed,
		Progress:   bar.Update,
		Logger:     logger,
	})
	bar.Finish()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := writePNG(output, raster); err != nil {
		return err
	}

	slogger.Debug("render stats", "pixels", stats.TotalPixels, "samples", stats.TotalSamples, "workers", stats.Workers)
	fmt.Fprintf(stdout, "Render time: %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "Render saved as %s\n", output)
	return nil
}

// resolveSettings layers the settings file, the scene's camera preset and any
// explicitly set flags, in that order
func resolveSettings(cmd *cobra.Command, opts *cliOptions, logger core.Logger) (renderer.RenderSettings, scene.Entry, error) {
	flags := cmd.Flags()

	settings := renderer.DefaultRenderSettings()
	fromFile := flags.Changed("settings") || opts.saveSettings
	if fromFile {
		loaded, err := config.Load(opts.settingsPath, logger)
		if err != nil {
			return settings, scene.Entry{}, err
		}
		settings = loaded
	}

	sceneName := opts.scene
	if fromFile && !flags.Changed("scene") && settings.Scene != "" {
		sceneName = settings.Scene
	}
	entry, err := scene.Lookup(sceneName)
	if err != nil {
		return settings, scene.Entry{}, err
	}

	// A file's camera belongs to the file's scene; a newly chosen scene gets its preset
	if !fromFile || entry.ID != settings.Scene {
		settings.ApplyCamera(entry.Camera)
	}
	settings.Scene = entry.ID

	if flags.Changed("camera-position") {
		p, err := parsePoint(opts.cameraPosition)
		if err != nil {
			return settings, entry, fmt.Errorf("invalid camera position: %w", err)
		}
		settings.CameraPosition = p
	}
	if flags.Changed("focus-point") {
		p, err := parsePoint(opts.focusPoint)
		if err != nil {
			return settings, entry, fmt.Errorf("invalid focus point: %w", err)
		}
		settings.FocusPoint = p
	}

	if flags.Changed("width") {
		settings.Width = opts.width
	}
	if flags.Changed("height") {
		settings.Height = opts.height
	}
	if flags.Changed("samples") {
		settings.Samples = opts.samples
	}
	if flags.Changed("max-depth") {
		settings.MaxDepth = opts.maxDepth
	}
	if flags.Changed("fov") {
		settings.FieldOfView = opts.fov
	}
	if flags.Changed("defocus-angle") {
		settings.DefocusAngle = opts.defocusAngle
	}
	if flags.Changed("focus-distance") {
		settings.FocusDistance = opts.focusDistance
	}

	return settings, entry, nil
}

// parsePoint reads "x,y,z" with optional surrounding parentheses and spaces
func parsePoint(s string) (core.Point, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "("), ")")

	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return core.Point{}, fmt.Errorf("%q: expected three comma separated numbers", s)
	}

	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Point{}, fmt.Errorf("%q: %w", s, err)
		}
		coords[i] = v
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

func writePNG(path string, raster *renderer.Raster) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := png.Encode(file, raster.ToImage()); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// progressBar draws a single updating line. Updates arrive from every worker,
// so redraws are serialized and only happen when the whole percentage changes.
type progressBar struct {
	mu      sync.Mutex
	out     *termenv.Output
	percent int
	width   int
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{out: termenv.NewOutput(w), percent: -1, width: 40}
}

func (p *progressBar) Update(fraction float64) {
	percent := int(fraction * 100)

	p.mu.Lock()
	defer p.mu.Unlock()
	if percent <= p.percent {
		return
	}
	p.percent = percent

	filled := p.width * percent / 100
	bar := p.out.String(strings.Repeat("█", filled)).Foreground(p.out.Color("2")).String() +
		p.out.String(strings.Repeat("░", p.width-filled)).Faint().String()
	fmt.Fprintf(p.out, "\r%s %3d%%", bar, percent)
}

func (p *progressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.percent >= 0 {
		fmt.Fprintln(p.out)
	}
}
