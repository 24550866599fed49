package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageMissing is returned when the decoration image cannot be loaded
var ErrImageMissing = errors.New("decoration image missing")

// Image is an image ready to be registered on a document
type Image struct {
	Name string
	Type string // gofpdf image type: JPG, PNG or GIF
	Data []byte
}

// LoadImage reads an image for embedding. JPEG, PNG and GIF are embedded
// as-is; BMP, TIFF and WebP are converted to PNG.
func LoadImage(fs afero.Fs, path string) (*Image, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageMissing, path, err)
	}

	img := &Image{Name: path, Data: data}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		img.Type = "JPG"
	case ".png":
		img.Type = "PNG"
	case ".gif":
		img.Type = "GIF"
	case ".bmp", ".tif", ".tiff", ".webp":
		converted, err := toPNG(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrImageMissing, path, err)
		}
		img.Type = "PNG"
		img.Data = converted
	default:
		return nil, fmt.Errorf("%w: %s: unsupported image format", ErrImageMissing, path)
	}

	return img, nil
}

func toPNG(data []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, decoded); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
