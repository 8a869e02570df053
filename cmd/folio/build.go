package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

const rebuildDebounce = 300 * time.Millisecond

var buildWatch bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site to static files",
	Long: `The build command renders the listing page, every published post, the
404 page and card thumbnails into the output directory, and writes a
manifest.json describing the build. With --watch it rebuilds whenever the
content or static directories change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}
		if buildWatch && cfg.BundlePath != "" {
			return errors.New("--watch cannot be combined with a content bundle")
		}

		app := folio.New(cfg, folio.WithLogger(logger))
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m, err := app.Build(ctx, app.Config.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d routes into %s (build %s)\n", len(m.Routes), app.Config.OutputDir, m.BuildID)

		if !buildWatch {
			return nil
		}
		return watch(ctx, []string{app.Config.ContentDir, app.Config.StaticDir}, rebuildDebounce, func() {
			if _, err := app.Build(ctx, app.Config.OutputDir); err != nil {
				logger.Error().Err(err).Msg("rebuild failed")
			}
		})
	},
}

func init() {
	buildCmd.Flags().String("output-dir", "", "output directory (default out)")
	buildCmd.Flags().String("url", "", "canonical site URL")
	buildCmd.Flags().String("bundle", "", "build from a packed SQLite bundle")
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "rebuild when content changes")
	rootCmd.AddCommand(buildCmd)
}
