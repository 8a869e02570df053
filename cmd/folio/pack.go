package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/content"
)

var packCmd = &cobra.Command{
	Use:   "pack [bundle.db]",
	Short: "Pack the content directory into a read-only SQLite bundle",
	Long: `The pack command copies every content file, in listing order, into a
single SQLite database that "folio serve --bundle" and "folio build --bundle"
read from.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}
		out := "content.db"
		if len(args) == 1 {
			out = args[0]
		}

		src := content.NewDirStore(cfg.ContentDir, cfg.Extensions...)
		n, err := content.WriteBundle(out, src)
		if err != nil {
			return fmt.Errorf("pack %s: %w", cfg.ContentDir, err)
		}
		logger.Info().Str("bundle", out).Int("files", n).Msg("content packed")
		fmt.Fprintf(cmd.OutOrStdout(), "Packed %d files from %s into %s\n", n, cfg.ContentDir, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}
