package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/eringen/folio/views"
)

const (
	jpegQuality  = 80
	thumbnailExt = ".jpg"
)

var errNoThumbnail = errors.New("no local thumbnail")

// resizeImage decodes an image from src, scales it down to maxWidth when
// wider, and encodes it as JPEG.
func resizeImage(src io.Reader, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxWidth > 0 && w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// localImagePath maps a thumbnail reference from front matter onto the
// static directory. References may be "/public/img.png", "/img.png" or
// "img.png"; none can escape staticDir.
func localImagePath(staticDir, ref string) string {
	ref = strings.TrimPrefix(ref, "/")
	ref = strings.TrimPrefix(ref, "public/")
	clean := path.Clean("/" + ref)
	return filepath.Join(staticDir, filepath.FromSlash(clean))
}

// thumbnail produces the resized card image for a published post. Posts
// without a local thumbnail report errNoThumbnail.
func (a *App) thumbnail(slug string) ([]byte, error) {
	post, err := a.Index.GetOne(slug)
	if err != nil {
		return nil, err
	}
	ref := post.Metadata.Thumbnail
	if ref == "" || views.IsRemoteImage(ref) {
		return nil, fmt.Errorf("thumbnail for %q: %w", slug, errNoThumbnail)
	}

	f, err := os.Open(localImagePath(a.Config.StaticDir, ref))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := resizeImage(f, a.Config.ThumbnailWidth)
	if err != nil {
		return nil, fmt.Errorf("thumbnail for %q: %w", slug, err)
	}
	return data, nil
}
