package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	Long: `The serve command renders pages on request straight from the content
directory, or from a bundle written by "folio pack" when --bundle is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}

		app := folio.New(cfg, folio.WithLogger(logger))
		defer app.Close()
		if err := app.Setup(); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logger.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(ctx); err != nil {
			return err
		}
		logger.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().String("url", "", "canonical site URL")
	serveCmd.Flags().String("bundle", "", "serve content from a packed SQLite bundle")
	rootCmd.AddCommand(serveCmd)
}
