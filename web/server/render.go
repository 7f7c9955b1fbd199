package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "complete", "error"
	Data string `json:"data"` // JSON-encoded data or a plain message
}

// ProgressUpdate reports how much of a render is done
type ProgressUpdate struct {
	RenderID  string  `json:"renderId"`
	Progress  float64 `json:"progress"` // Completed fraction in [0, 1]
	Percent   int     `json:"percent"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// RenderComplete carries the finished image
type RenderComplete struct {
	RenderID  string `json:"renderId"`
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs int64  `json:"elapsedMs"`
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

// handleRender renders a scene and streams progress, console output and the
// final image as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()
	renderID := uuid.NewString()

	// Every event goes through one channel drained by a single writer
	sseEventChan := make(chan SSEEvent, 100)
	var writer errgroup.Group
	writer.Go(func() error {
		s.writeSSEEvents(ctx, w, sseEventChan)
		return nil
	})
	defer func() {
		close(sseEventChan)
		writer.Wait()
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)

	producers, pctx := errgroup.WithContext(ctx)
	producers.Go(func() error {
		s.streamConsoleMessages(pctx, consoleChan, sseEventChan)
		return nil
	})
	producers.Go(func() error {
		defer close(consoleChan)
		return s.runRender(pctx, req, renderID, webLogger, sseEventChan)
	})

	if err := producers.Wait(); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
	}
}

// runRender builds the world, renders it and queues the completion event
func (s *Server) runRender(ctx context.Context, req *RenderRequest, renderID string, logger core.Logger, sseEventChan chan<- SSEEvent) error {
	settings := req.Settings()
	world := req.entry.NewWorld(scene.BuildOptions{
		Sampler:  core.NewSeededSampler(req.Seed),
		Logger:   logger,
		AssetDir: s.assetDir,
	})

	startTime := time.Now()
	progress := newProgressReporter(ctx, renderID, startTime, sseEventChan)

	raster, stats, err := renderer.Render(world, settings, renderer.RenderOptions{
		Seed:     req.Seed,
		Progress: progress.Update,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	imageData, err := imageToBase64PNG(raster.ToImage())
	if err != nil {
		return fmt.Errorf("encoding image: %w", err)
	}

	data, err := json.Marshal(RenderComplete{
		RenderID:  renderID,
		Scene:     settings.Scene,
		Width:     settings.Width,
		Height:    settings.Height,
		ImageData: imageData,
		ElapsedMs: time.Since(startTime).Milliseconds(),
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			Workers:          stats.Workers,
			SamplesPerSecond: stats.SamplesPerSecond(),
		},
	})
	if err != nil {
		return err
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
	return nil
}

// progressReporter forwards whole-percent progress changes as SSE events.
// Updates arrive from every render worker.
type progressReporter struct {
	ctx       context.Context
	renderID  string
	startTime time.Time
	events    chan<- SSEEvent

	mu      sync.Mutex
	percent int
}

func newProgressReporter(ctx context.Context, renderID string, startTime time.Time, events chan<- SSEEvent) *progressReporter {
	return &progressReporter{ctx: ctx, renderID: renderID, startTime: startTime, events: events, percent: -1}
}

func (p *progressReporter) Update(fraction float64) {
	percent := int(fraction * 100)

	p.mu.Lock()
	defer p.mu.Unlock()
	if percent <= p.percent {
		return
	}
	p.percent = percent

	data, err := json.Marshal(ProgressUpdate{
		RenderID:  p.renderID,
		Progress:  fraction,
		Percent:   percent,
		ElapsedMs: time.Since(p.startTime).Milliseconds(),
	})
	if err != nil {
		return
	}

	select {
	case p.events <- SSEEvent{Type: "progress", Data: string(data)}:
	case <-p.ctx.Done():
	default:
		// Channel full, the next update supersedes this one
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes all SSE events from a single goroutine until the channel
// closes or the client goes away
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until the console channel closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Error("marshaling console message", "error", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			// Keep draining so the logger never blocks
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.Samples, err = parseIntParam(r.URL.Query(), "samples", 50, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(r.URL.Query(), "maxDepth", 50, 0, maxDepth); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		s.logger.Warn("large image with high samples may render slowly",
			"width", req.Width, "height", req.Height, "samples", req.Samples)
	}

	return req, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
