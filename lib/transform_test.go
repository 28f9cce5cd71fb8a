package s3thumbnail

import (
	"bytes"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeConfig(t *testing.T, body []byte) (image.Config, string) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	require.NoError(t, err)
	return cfg, format
}

func TestTransformFit(t *testing.T) {
	tr := NewTransformer(ThumbnailSpec{Width: 200, Height: 200}, DefaultJPEGQuality)

	testList := []struct {
		format       imaging.Format
		w, h         int
		wantW, wantH int
		wantFormat   string
	}{
		{imaging.JPEG, 300, 100, 200, 66, "jpeg"},
		{imaging.PNG, 100, 300, 66, 200, "png"},
		{imaging.PNG, 50, 50, 50, 50, "png"},
		{imaging.JPEG, 200, 200, 200, 200, "jpeg"},
		{imaging.JPEG, 200, 150, 200, 150, "jpeg"},
		{imaging.PNG, 1000, 1000, 200, 200, "png"},
		{imaging.GIF, 400, 100, 200, 50, "gif"},
	}
	for _, tc := range testList {
		thumb, err := tr.Transform("key", testImage(t, tc.format, tc.w, tc.h))
		require.NoError(t, err)
		assert.Equal(t, tc.wantW, thumb.Width)
		assert.Equal(t, tc.wantH, thumb.Height)

		cfg, format := decodeConfig(t, thumb.Body)
		assert.Equal(t, tc.wantW, cfg.Width)
		assert.Equal(t, tc.wantH, cfg.Height)
		assert.Equal(t, tc.wantFormat, format)
		assert.Equal(t, tc.format, thumb.Format)
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	tr := NewTransformer(ThumbnailSpec{Width: 120, Height: 80}, DefaultJPEGQuality)

	first, err := tr.Transform("a.jpg", testImage(t, imaging.JPEG, 640, 480))
	require.NoError(t, err)
	assert.Equal(t, 106, first.Width)
	assert.Equal(t, 80, first.Height)

	second, err := tr.Transform("a.jpg", first.Body)
	require.NoError(t, err)
	assert.Equal(t, first.Width, second.Width)
	assert.Equal(t, first.Height, second.Height)
}

func TestTransformUsesContentNotKey(t *testing.T) {
	tr := NewTransformer(ThumbnailSpec{Width: 200, Height: 200}, DefaultJPEGQuality)

	// PNG bytes under a .jpg key stay PNG
	thumb, err := tr.Transform("mislabeled.jpg", testImage(t, imaging.PNG, 400, 400))
	require.NoError(t, err)
	_, format := decodeConfig(t, thumb.Body)
	assert.Equal(t, "png", format)
}

func TestTransformDecodeError(t *testing.T) {
	tr := NewTransformer(ThumbnailSpec{Width: 200, Height: 200}, DefaultJPEGQuality)

	testList := map[string][]byte{
		"empty.jpg":     {},
		"text.png":      []byte("this is not an image"),
		"truncated.jpg": testImage(t, imaging.JPEG, 300, 300)[:64],
	}
	for key, body := range testList {
		thumb, err := tr.Transform(key, body)
		assert.Nil(t, thumb, key)
		require.Error(t, err, key)
		assert.True(t, IsDecodeFailed(err), key)
		assert.Contains(t, err.Error(), key)
	}
}
