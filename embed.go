package folio

import (
	"embed"
)

// EmbeddedAssets contains fallbacks served when the static directory
// lacks them: favicon.svg and robots.txt.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

var (
	defaultFavicon = mustAsset("embedded/favicon.svg")
	defaultRobots  = string(mustAsset("embedded/robots.txt"))
)

func mustAsset(name string) []byte {
	b, err := EmbeddedAssets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return b
}
