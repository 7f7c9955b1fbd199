package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	var opts server.Options
	var verbose bool

	cmd := &cobra.Command{
		Use:          "pathtracer-web",
		Short:        "Path tracer web server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			webServer := server.NewServer(opts)
			opts.Logger.Info("path tracer web server", "url", "http://localhost:"+cmd.Flag("port").Value.String())
			return webServer.Start()
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 8080, "Port to serve on")
	cmd.Flags().StringVar(&opts.AssetDir, "assets", scene.DefaultAssetDir, "Directory holding image textures")
	cmd.Flags().StringVar(&opts.StaticDir, "static", "static", "Directory of static files served at /, empty to disable")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
