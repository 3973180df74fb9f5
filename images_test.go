package starterblog

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessAvatarFixedSize(t *testing.T) {
	avatar, err := ProcessAvatar(pngOf(t, 300, 200), "My Photo.PNG", AvatarSize, "/blog/")
	require.NoError(t, err)

	assert.Equal(t, AvatarSize, avatar.Image.Width)
	assert.Equal(t, AvatarSize, avatar.Image.Height)
	require.Len(t, avatar.Renditions, 2)

	for i, r := range avatar.Renditions {
		img, err := jpeg.Decode(bytes.NewReader(r.Data))
		require.NoError(t, err)
		side := AvatarSize * (i + 1)
		assert.Equal(t, image.Rect(0, 0, side, side), img.Bounds())
		assert.Equal(t, side, r.Width)
		assert.True(t, strings.HasPrefix(r.Route, "/static/"), r.Route)
		assert.True(t, strings.HasSuffix(r.Route, "/my-photo.jpg"), r.Route)
	}

	assert.Equal(t, "/blog"+avatar.Renditions[0].Route, avatar.Image.Src)
	assert.Equal(t,
		"/blog"+avatar.Renditions[0].Route+" 1x, /blog"+avatar.Renditions[1].Route+" 2x",
		avatar.Image.SrcSet)
}

func TestProcessAvatarSmallSourceHasNoRetinaRendition(t *testing.T) {
	avatar, err := ProcessAvatar(pngOf(t, 100, 100), "me.png", AvatarSize, "/")
	require.NoError(t, err)

	require.Len(t, avatar.Renditions, 1)
	assert.Empty(t, avatar.Image.SrcSet)
	assert.True(t, strings.HasPrefix(avatar.Image.Src, "/static/"))
}

func TestProcessAvatarRoutesAreContentAddressed(t *testing.T) {
	a, err := ProcessAvatar(pngOf(t, 80, 80), "me.png", AvatarSize, "/")
	require.NoError(t, err)
	b, err := ProcessAvatar(pngOf(t, 80, 80), "me.png", AvatarSize, "/")
	require.NoError(t, err)
	assert.Equal(t, a.Renditions[0].Route, b.Renditions[0].Route)

	var buf bytes.Buffer
	require.NoError(t, WritePlaceholderAvatar(&buf, 80))
	c, err := ProcessAvatar(&buf, "me.png", AvatarSize, "/")
	require.NoError(t, err)
	assert.NotEqual(t, a.Renditions[0].Route, c.Renditions[0].Route)
}

func TestProcessAvatarRejectsGarbage(t *testing.T) {
	_, err := ProcessAvatar(strings.NewReader("not an image"), "me.png", AvatarSize, "/")
	assert.Error(t, err)
}

func TestResolveAvatar(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		avatar, err := ResolveAvatar(SiteConfig{})
		require.NoError(t, err)
		assert.Empty(t, avatar.Renditions)
		assert.Empty(t, avatar.Image.Src)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ResolveAvatar(SiteConfig{Avatar: "does/not/exist.png"})
		assert.Error(t, err)
	})

	t.Run("configured", func(t *testing.T) {
		cfg := writeTestSite(t, "")
		avatar, err := ResolveAvatar(cfg)
		require.NoError(t, err)
		assert.Len(t, avatar.Renditions, 2)

		q := NewStaticQuery(cfg, avatar)
		assert.Equal(t, "My Blog", q.Site.SiteMetadata.Title)
		assert.Equal(t, avatar.Image, q.Avatar.ChildImageSharp.Fixed)
	})
}

func TestWritePlaceholderAvatar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlaceholderAvatar(&buf, 150))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 150, 150), img.Bounds())
}
