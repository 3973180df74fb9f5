package starterblog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/eringen/starterblog/views"
)

const (
	// AvatarSize is the fixed width and height of the bio avatar.
	AvatarSize  = 75
	jpegQuality = 85
	staticRoute = "/static"
)

// Rendition is one encoded size of a fixed image, addressed by Route
// relative to the site root ("/static/<hash>/<name>.jpg").
type Rendition struct {
	Route string
	Width int
	Data  []byte
}

// FixedAvatar is a resolved avatar: the view descriptor plus the encoded
// files it refers to.
type FixedAvatar struct {
	Image      views.FixedImage
	Renditions []Rendition
}

// ProcessAvatar decodes an image from src, centre-crops it to a square and
// scales it to size×size. A 2x rendition is added when the source is large
// enough. Links in the returned descriptor are prefixed with rootPath.
func ProcessAvatar(src io.Reader, originalName string, size int, rootPath string) (FixedAvatar, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return FixedAvatar{}, fmt.Errorf("decode image: %w", err)
	}
	crop := squareCrop(img.Bounds())
	base := slugifyFilename(originalName)
	if base == "" {
		base = "avatar"
	}

	var out FixedAvatar
	for _, density := range []int{1, 2} {
		w := size * density
		if density > 1 && crop.Dx() < w {
			break
		}
		data, err := scaleJPEG(img, crop, w)
		if err != nil {
			return FixedAvatar{}, err
		}
		sum := sha256.Sum256(data)
		out.Renditions = append(out.Renditions, Rendition{
			Route: path.Join(staticRoute, hex.EncodeToString(sum[:])[:16], base+".jpg"),
			Width: w,
			Data:  data,
		})
	}

	out.Image = views.FixedImage{
		Width:  size,
		Height: size,
		Src:    views.SitePath(rootPath, out.Renditions[0].Route),
	}
	if len(out.Renditions) > 1 {
		var parts []string
		for i, r := range out.Renditions {
			parts = append(parts, fmt.Sprintf("%s %dx", views.SitePath(rootPath, r.Route), i+1))
		}
		out.Image.SrcSet = strings.Join(parts, ", ")
	}
	return out, nil
}

// squareCrop returns the largest centred square inside b.
func squareCrop(b image.Rectangle) image.Rectangle {
	side := min(b.Dx(), b.Dy())
	x := b.Min.X + (b.Dx()-side)/2
	y := b.Min.Y + (b.Dy()-side)/2
	return image.Rect(x, y, x+side, y+side)
}

func scaleJPEG(img image.Image, crop image.Rectangle, side int) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	// Transparent sources would otherwise encode as black.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// ResolveAvatar processes the configured avatar. An empty path yields no
// avatar; a configured path that cannot be read is a build error.
func ResolveAvatar(cfg SiteConfig) (FixedAvatar, error) {
	if cfg.Avatar == "" {
		return FixedAvatar{}, nil
	}
	f, err := os.Open(cfg.Avatar)
	if err != nil {
		return FixedAvatar{}, fmt.Errorf("open avatar: %w", err)
	}
	defer f.Close()

	avatar, err := ProcessAvatar(f, filepath.Base(cfg.Avatar), AvatarSize, cfg.RootPath())
	if err != nil {
		return FixedAvatar{}, fmt.Errorf("process avatar %s: %w", cfg.Avatar, err)
	}
	return avatar, nil
}

// NewStaticQuery assembles the resolved data the bio card declares it needs.
func NewStaticQuery(cfg SiteConfig, avatar FixedAvatar) views.StaticQuery {
	return views.StaticQuery{
		Site:   views.Site{SiteMetadata: cfg.Metadata()},
		Avatar: views.AvatarFile{ChildImageSharp: views.ImageSharp{Fixed: avatar.Image}},
	}
}

// WritePlaceholderAvatar writes a plain square PNG, used by freshly
// scaffolded sites until the author drops in a real picture.
func WritePlaceholderAvatar(w io.Writer, side int) error {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	bg := color.RGBA{R: 0x66, G: 0x33, B: 0x99, A: 0xff}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	return png.Encode(w, img)
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	ext := filepath.Ext(name)
	return Slugify(strings.TrimSuffix(name, ext))
}
