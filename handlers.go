package folio

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
)

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Index.ListPublished()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(a.site(), posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug, err := url.PathUnescape(c.Param("slug"))
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
	}
	post, err := a.Index.GetOne(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		}
		return err
	}
	return Render(c, a.Views.Post(a.site(), post, a.Index.GetAdjacent(slug)))
}

func (a *App) handleThumbnail(c echo.Context) error {
	file := c.Param("file")
	slug, ok := strings.CutSuffix(file, thumbnailExt)
	if !ok || slug == "" {
		return echo.ErrNotFound
	}
	data, err := a.thumbnail(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) || errors.Is(err, errNoThumbnail) || errors.Is(err, os.ErrNotExist) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (a *App) handleFavicon(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "favicon.svg")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", defaultFavicon)
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, defaultRobots)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
