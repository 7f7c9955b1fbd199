package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderOptions controls how a render is executed, as opposed to what it looks like
type RenderOptions struct {
	NumWorkers int                   // Parallel workers, <= 0 means one per CPU
	Seed       int64                 // Base seed, 0 means a time-based seed
	Progress   ProgressFunc          // Optional completion callback
	Logger     core.Logger           // Optional, defaults to discarding output
	Integrator integrator.Integrator // Optional, defaults to path tracing
}

// Raytracer renders one world with one set of settings. A single instance is
// shared by every worker; only the raster and progress counter are written.
type Raytracer struct {
	world      *scene.World
	settings   RenderSettings
	camera     *Camera
	integrator integrator.Integrator
	raster     *Raster
	progress   *Progress
}

// NewRaytracer creates a raytracer writing into a fresh raster
func NewRaytracer(world *scene.World, settings RenderSettings, integ integrator.Integrator, progress ProgressFunc) *Raytracer {
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator()
	}
	return &Raytracer{
		world:      world,
		settings:   settings,
		camera:     NewCamera(settings),
		integrator: integ,
		raster:     NewRaster(settings.Width, settings.Height),
		progress:   NewProgress(settings.Width*settings.Height, progress),
	}
}

// Raster returns the image being rendered
func (rt *Raytracer) Raster() *Raster {
	return rt.raster
}

// Camera returns the camera built from the settings
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// RenderPixel estimates the color of pixel (i, j) from Samples camera rays
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler, samples []core.Color) core.Color {
	samples = samples[:0]
	for s := 0; s < rt.settings.Samples; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		samples = append(samples, rt.integrator.RayColor(ray, rt.world, rt.settings.MaxDepth, sampler))
	}
	return core.AverageColors(samples)
}

// RenderColumn renders every pixel of column x top to bottom
func (rt *Raytracer) RenderColumn(x int, sampler core.Sampler) RenderStats {
	samples := make([]core.Color, 0, rt.settings.Samples)

	for y := 0; y < rt.settings.Height; y++ {
		color := rt.RenderPixel(x, y, sampler, samples)
		rt.raster.SetRGB(x, y, color.GammaCorrect().Clamp(0, 1).RGB8())
		rt.progress.PixelDone()
	}

	return RenderStats{
		TotalPixels:  rt.settings.Height,
		TotalSamples: rt.settings.Height * rt.settings.Samples,
		Columns:      1,
	}
}

// Render traces world with settings and blocks until every column is finished.
// The only error is an invalid settings value, reported before any work starts.
func Render(world *scene.World, settings RenderSettings, opts RenderOptions) (*Raster, RenderStats, error) {
	if err := settings.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	baseSeed := opts.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	start := time.Now()
	raytracer := NewRaytracer(world, settings, opts.Integrator, opts.Progress)
	pool := NewWorkerPool(raytracer, settings.Width, opts.NumWorkers)

	logger.Printf("Rendering %dx%d at %d samples per pixel, max depth %d, %d workers\n",
		settings.Width, settings.Height, settings.Samples, settings.MaxDepth, pool.GetNumWorkers())

	pool.Start()
	for x := 0; x < settings.Width; x++ {
		pool.SubmitTask(ColumnTask{Column: x, Seed: columnSeed(baseSeed, x)})
	}
	pool.Stop()

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Add(result.Stats)
	}
	stats.Duration = time.Since(start)

	logger.Printf("Render completed in %v (%d samples, %.0f samples/s)\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.SamplesPerSecond())

	return raytracer.Raster(), stats, nil
}

// columnSeed derives a column's seed. Zero is avoided because it means "use the clock".
func columnSeed(base int64, column int) int64 {
	seed := base + int64(column)
	if seed == 0 {
		seed = 1
	}
	return seed
}
