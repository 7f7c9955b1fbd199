package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const (
	defaultScene = "cornell-box"
	minImageSize = 16
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 200
)

// Options configures a Server
type Options struct {
	Port      int
	AssetDir  string       // Directory holding image textures, defaults to scene.DefaultAssetDir
	StaticDir string       // Directory served at /, empty to serve only the API
	Logger    *slog.Logger // Server log, defaults to slog.Default
}

// Server handles web requests for the path tracer
type Server struct {
	port      int
	assetDir  string
	staticDir string
	logger    *slog.Logger
}

// NewServer creates a new web server
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AssetDir == "" {
		opts.AssetDir = scene.DefaultAssetDir
	}
	return &Server{
		port:      opts.Port,
		assetDir:  opts.AssetDir,
		staticDir: opts.StaticDir,
		logger:    opts.Logger,
	}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene         string  `json:"scene"`         // Scene ID or display name
	Width         int     `json:"width"`         // Image width
	Height        int     `json:"height"`        // Image height
	Samples       int     `json:"samples"`       // Samples per pixel
	MaxDepth      int     `json:"maxDepth"`      // Maximum bounce depth
	DefocusAngle  float64 `json:"defocusAngle"`  // Aperture cone angle in degrees
	FocusDistance float64 `json:"focusDistance"` // Distance to the plane in focus
	Seed          int64   `json:"seed"`          // Random seed, 0 for time-based

	entry scene.Entry
}

// Settings converts the request into render settings using the scene's camera preset
func (req *RenderRequest) Settings() renderer.RenderSettings {
	settings := renderer.DefaultRenderSettings()
	settings.Scene = req.entry.ID
	settings.ApplyCamera(req.entry.Camera)
	settings.Width = req.Width
	settings.Height = req.Height
	settings.Samples = req.Samples
	settings.MaxDepth = req.MaxDepth
	settings.DefocusAngle = req.DefocusAngle
	settings.FocusDistance = req.FocusDistance
	return settings
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting web server", "url", "http://localhost"+addr)
	return httpServer.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the default settings for a scene along with the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	entry, err := scene.Lookup(sceneName)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	defaults := renderer.DefaultRenderSettings()
	defaults.Scene = entry.ID
	defaults.ApplyCamera(entry.Camera)
	defaults.Width, defaults.Height = 400, 400
	defaults.Samples = 50

	response := map[string]interface{}{
		"scene":    entry.SceneInfo,
		"defaults": defaults,
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"maxDepth": map[string]int{"min": 0, "max": maxDepth},
			"defocusAngle": map[string]float64{
				"min": 0,
				"max": 90,
			},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseCommonSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	entry, err := scene.Lookup(req.Scene)
	if err != nil {
		return err
	}
	req.entry = entry

	if req.Width, err = parseIntParam(query, "width", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 400, minImageSize, maxImageSize); err != nil {
		return err
	}
	if req.DefocusAngle, err = parseFloatParam(query, "defocusAngle", 0, 0, 90); err != nil {
		return err
	}
	if req.FocusDistance, err = parseFloatParam(query, "focusDistance", 0, 0, 1e6); err != nil {
		return err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 1); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
