package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func printedSettings(t *testing.T, args ...string) renderer.RenderSettings {
	t.Helper()
	out, err := execute(t, append(args, "--print-settings")...)
	require.NoError(t, err)

	var settings renderer.RenderSettings
	require.NoError(t, toml.Unmarshal([]byte(out), &settings))
	return settings
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected core.Point
		wantErr  bool
	}{
		{"plain", "1,2,3", core.NewVec3(1, 2, 3), false},
		{"parenthesised with spaces", "(278, 278, -800)", core.NewVec3(278, 278, -800), false},
		{"decimals", " 0.5,1.25 ,-2.75 ", core.NewVec3(0.5, 1.25, -2.75), false},
		{"two components", "1,2", core.Point{}, true},
		{"four components", "1,2,3,4", core.Point{}, true},
		{"not a number", "1,two,3", core.Point{}, true},
		{"empty", "", core.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePoint(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestPrintSettings_AppliesScenePreset(t *testing.T) {
	settings := printedSettings(t, "--scene", "Cornell Box")

	entry, err := scene.Lookup("cornell-box")
	require.NoError(t, err)
	assert.Equal(t, "cornell-box", settings.Scene, "display names resolve to the scene ID")
	assert.Equal(t, entry.Camera.Position, settings.CameraPosition)
	assert.Equal(t, entry.Camera.FocusPoint, settings.FocusPoint)
	assert.Equal(t, entry.Camera.FieldOfView, settings.FieldOfView)
}

func TestPrintSettings_FlagsOverridePreset(t *testing.T) {
	settings := printedSettings(t,
		"--scene", "three-spheres",
		"--camera-position", "(1, 2, 3)",
		"--focus-point", "0,0,-1",
		"-w", "320", "--height", "200", "-n", "8",
		"--max-depth", "4", "--fov", "30",
		"--defocus-angle", "2", "--focus-distance", "5",
	)

	assert.Equal(t, core.NewVec3(1, 2, 3), settings.CameraPosition)
	assert.Equal(t, core.NewVec3(0, 0, -1), settings.FocusPoint)
	assert.Equal(t, 320, settings.Width)
	assert.Equal(t, 200, settings.Height)
	assert.Equal(t, 8, settings.Samples)
	assert.Equal(t, 4, settings.MaxDepth)
	assert.Equal(t, 30.0, settings.FieldOfView)
	assert.Equal(t, 2.0, settings.DefocusAngle)
	assert.Equal(t, 5.0, settings.FocusDistance)
}

func TestInvalidArguments(t *testing.T) {
	_, err := execute(t, "--scene", "teapot", "--print-settings")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)

	_, err = execute(t, "--camera-position", "1,2", "--print-settings")
	assert.ErrorContains(t, err, "invalid camera position")

	dir := t.TempDir()
	_, err = execute(t, "--samples", "0", "-o", filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, renderer.ErrInvalidSettings)
	assert.NoFileExists(t, filepath.Join(dir, "out.png"))
}

func TestSaveSettingsThenReuse(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.toml")

	_, err := execute(t,
		"--scene", "earth", "-w", "4", "--height", "3", "-n", "1", "--max-depth", "2",
		"--seed", "42", "--assets", dir,
		"--settings", settingsPath, "--save-settings",
		"-o", filepath.Join(dir, "first.png"),
	)
	require.NoError(t, err)
	require.FileExists(t, settingsPath)

	// Without --scene the file's scene and camera are kept
	settings := printedSettings(t, "--settings", settingsPath)
	assert.Equal(t, "earth", settings.Scene)
	assert.Equal(t, 4, settings.Width)
	assert.Equal(t, 3, settings.Height)
}

func TestRenderWritesPNG(t *testing.T) {
	output := filepath.Join(t.TempDir(), "renders", "out.png")

	stdout, err := execute(t,
		"--scene", "one-sphere", "-w", "8", "--height", "6", "-n", "2", "--max-depth", "3",
		"--seed", "42", "--workers", "2", "-o", output,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Render time:")

	file, err := os.Open(output)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestWritePNG(t *testing.T) {
	raster := renderer.NewRaster(3, 2)
	raster.SetRGB(2, 1, [3]uint8{10, 20, 30})

	tests := []struct {
		name    string
		path    func(dir string) string
		wantErr string
	}{
		{
			name: "creates nested directories",
			path: func(dir string) string { return filepath.Join(dir, "a", "b", "out.png") },
		},
		{
			name: "parent is a regular file",
			path: func(dir string) string {
				blocker := filepath.Join(dir, "blocker")
				require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
				return filepath.Join(blocker, "out.png")
			},
			wantErr: "creating output directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t.TempDir())
			err := writePNG(path, raster)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			file, err := os.Open(path)
			require.NoError(t, err)
			defer file.Close()

			img, err := png.Decode(file)
			require.NoError(t, err)
			assert.Equal(t, 3, img.Bounds().Dx())
			assert.Equal(t, 2, img.Bounds().Dy())
			r, g, b, _ := img.At(2, 1).RGBA()
			assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBar(&buf)

	bar.Update(0.5)
	bar.Update(0.501) // Same whole percentage, no redraw
	bar.Update(0.25)  // Late update from a slower worker, ignored
	bar.Update(1)
	bar.Finish()

	out := buf.String()
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "100%")
	assert.NotContains(t, out, " 25%")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\r")))
}
