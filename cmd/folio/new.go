package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/scaffold"
)

var newTitleCase bool

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a draft post with the next ordinal",
	Example: `  folio new "Testing React components"
  folio new --title-case testing with vitest`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := siteConfig()
		if err != nil {
			return err
		}
		title := strings.Join(args, " ")
		if newTitleCase {
			title = cases.Title(language.English, cases.NoLower).String(title)
		}

		path, err := scaffold.Post(cfg.ContentDir, title, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Create a new folio site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		created, err := scaffold.Site(dir, scaffold.SiteData{
			SiteName: toTitle(filepath.Base(dir)),
			Date:     time.Now().Format("2006-01-02"),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Creating new folio site: %s\n\n", dir)
		for _, f := range created {
			fmt.Fprintf(out, "  created %s\n", filepath.Join(dir, f))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  cd %s\n", dir)
		fmt.Fprintln(out, "  folio serve")
		return nil
	},
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog"
func toTitle(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

func init() {
	newCmd.Flags().BoolVar(&newTitleCase, "title-case", false, "title-case the post title")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(initCmd)
}
