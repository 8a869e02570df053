package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

var routesFiles bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the routes a static build generates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}
		app := folio.New(cfg, folio.WithLogger(logger))
		defer app.Close()

		out := cmd.OutOrStdout()
		if !routesFiles {
			routes, err := app.Routes()
			if err != nil {
				return err
			}
			for _, r := range routes {
				fmt.Fprintln(out, r)
			}
			return nil
		}

		if err := app.Setup(); err != nil {
			return err
		}
		manifest, err := app.Index.Manifest()
		if err != nil {
			return err
		}
		slugs := make([]string, 0, len(manifest))
		for slug := range manifest {
			slugs = append(slugs, slug)
		}
		sort.Strings(slugs)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, slug := range slugs {
			fmt.Fprintf(tw, "/%s/\t%s\n", slug, manifest[slug])
		}
		return tw.Flush()
	},
}

func init() {
	routesCmd.Flags().BoolVar(&routesFiles, "files", false, "show the file each post is served from")
	routesCmd.Flags().String("bundle", "", "read content from a packed SQLite bundle")
	rootCmd.AddCommand(routesCmd)
}
