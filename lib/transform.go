package s3thumbnail

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ThumbnailSpec is the bounding box thumbnails are fitted into. Images are
// never enlarged.
type ThumbnailSpec struct {
	Width  int
	Height int
}

type Thumbnail struct {
	Body   []byte
	Format imaging.Format
	Width  int
	Height int
}

type Transformer struct {
	spec        ThumbnailSpec
	jpegQuality int
}

func NewTransformer(spec ThumbnailSpec, jpegQuality int) *Transformer {
	return &Transformer{spec: spec, jpegQuality: jpegQuality}
}

// Transform decodes body, fits it into the box and encodes it with the codec
// it was decoded with. The codec comes from the content, never from the key.
func (t *Transformer) Transform(key ObjectKey, body []byte) (*Thumbnail, error) {
	img, name, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, newErrorDecodeFailed(err, key)
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, newErrorDecodeFailed(errors.Wrapf(err, "no encoder for %s", name), key)
	}

	out := t.fit(img)

	buf := &bytes.Buffer{}
	err = imaging.Encode(buf, out, format, imaging.JPEGQuality(t.jpegQuality))
	if err != nil {
		return nil, newErrorDecodeFailed(errors.Wrap(err, "encode failed"), key)
	}

	b := out.Bounds()
	return &Thumbnail{
		Body:   buf.Bytes(),
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

func (t *Transformer) fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= t.spec.Width && b.Dy() <= t.spec.Height {
		return img
	}
	return imaging.Fit(img, t.spec.Width, t.spec.Height, imaging.Lanczos)
}

