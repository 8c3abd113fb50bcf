package effects

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Content types understood by DecodeImage and EncodeImage.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJPEG = "image/jpeg"
	ContentTypeWebP = "image/webp"
	ContentTypeBMP  = "image/bmp"
	ContentTypeTIFF = "image/tiff"
)

// ContentTypeFromPath guesses the content type from a file extension. It
// returns "" for unknown extensions.
func ContentTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ContentTypePNG
	case ".jpg", ".jpeg":
		return ContentTypeJPEG
	case ".webp":
		return ContentTypeWebP
	case ".bmp":
		return ContentTypeBMP
	case ".tif", ".tiff":
		return ContentTypeTIFF
	default:
		return ""
	}
}

// DecodeImage decodes an image from a byte slice with context awareness.
// JPEGs are rotated according to their EXIF orientation.
func DecodeImage(ctx context.Context, imgBytes []byte, contentType string) (image.Image, string, error) {
	var img image.Image
	var err error
	var ext string

	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}

	switch contentType {
	case ContentTypePNG:
		img, err = png.Decode(bytes.NewReader(imgBytes))
		ext = "png"
	case ContentTypeJPEG:
		img, err = imaging.Decode(bytes.NewReader(imgBytes), imaging.AutoOrientation(true))
		ext = "jpg"
	case ContentTypeWebP:
		img, err = webp.Decode(bytes.NewReader(imgBytes))
		ext = "webp"
	case ContentTypeBMP:
		img, err = bmp.Decode(bytes.NewReader(imgBytes))
		ext = "bmp"
	case ContentTypeTIFF:
		img, err = tiff.Decode(bytes.NewReader(imgBytes))
		ext = "tiff"
	default:
		img, ext, err = image.Decode(bytes.NewReader(imgBytes))
	}
	if err != nil {
		return nil, ext, fmt.Errorf("decoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, "", err
	}
	return img, ext, nil
}

// EncodeImage encodes an image to a byte slice with context awareness.
func EncodeImage(ctx context.Context, img image.Image, contentType string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	switch contentType {
	case ContentTypePNG:
		err = imaging.Encode(&buf, img, imaging.PNG)
	case ContentTypeJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case ContentTypeBMP:
		err = imaging.Encode(&buf, img, imaging.BMP)
	case ContentTypeTIFF:
		err = imaging.Encode(&buf, img, imaging.TIFF)
	default:
		return nil, fmt.Errorf("unsupported format: %s", contentType)
	}

	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
