package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

var (
	cfgFile  string
	logLevel string
	v        = viper.New()
	logger   = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a file-backed blog built with Go, Echo, and templ",
	Long: `folio serves a blog from a directory of Markdown posts with YAML front
matter, or renders it to a static site.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, logLevel)
		log.Logger = logger
		return initializeConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./folio.yaml)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.String("content-dir", "", "directory holding the posts")
	pf.String("static-dir", "", "directory served under /public")
	pf.String("failure-policy", "", "posts with broken front matter: include or exclude")
}

// newLogger writes human-readable logs to terminals and JSON everywhere else.
func newLogger(w io.Writer, level string) zerolog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func initializeConfig(cmd *cobra.Command) error {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("addr", ":3000")
	v.SetDefault("content_dir", "content/blogs")
	v.SetDefault("static_dir", "public")
	v.SetDefault("output_dir", "out")
	v.SetDefault("thumbnail_width", 740)
	v.SetDefault("failure_policy", content.IncludePlaceholder.String())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
		logger.Debug().Msg("no folio.yaml found, using defaults and environment")
	} else {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}

	return bindFlags(cmd)
}

// bindFlags exposes every flag to viper under its snake_case key, so
// --content-dir overrides content_dir.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || f.Name == "log-level" || f.Name == "version" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

// siteConfig assembles the app configuration from viper.
func siteConfig() (folio.SiteConfig, error) {
	policy, err := content.ParseFailurePolicy(v.GetString("failure_policy"))
	if err != nil {
		return folio.SiteConfig{}, err
	}
	return folio.SiteConfig{
		Name:           v.GetString("name"),
		URL:            v.GetString("url"),
		Description:    v.GetString("description"),
		Author:         v.GetString("author"),
		Addr:           v.GetString("addr"),
		ContentDir:     v.GetString("content_dir"),
		BundlePath:     v.GetString("bundle"),
		StaticDir:      v.GetString("static_dir"),
		OutputDir:      v.GetString("output_dir"),
		Extensions:     extensions(),
		ThumbnailWidth: v.GetInt("thumbnail_width"),
		FailurePolicy:  policy,
	}, nil
}

// extensions reads the content extension list. A YAML list passes through
// as is; a string from the environment or a flag is split on commas and
// whitespace, so FOLIO_EXTENSIONS=md,mdx works.
func extensions() []string {
	var exts []string
	for _, e := range v.GetStringSlice("extensions") {
		exts = append(exts, strings.FieldsFunc(e, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})...)
	}
	return exts
}
