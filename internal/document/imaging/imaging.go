// Package imaging decodes uploaded document photos and prepares them for the
// vision API, the OCR engines and the face detectors.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"

	// Registered decoders for the raster formats accepted on upload.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	dErrors "kycscan/pkg/domain-errors"
)

// TransportQuality is the JPEG quality used for images sent upstream.
const TransportQuality = 85

// Decode parses raw bytes into an image. Empty or unrecognized input yields a
// decode_error.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", dErrors.New(dErrors.CodeDecode, "image is empty")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeDecode, "invalid image file")
	}
	return img, format, nil
}

// ToColorArray decodes data into an opaque RGBA grid. Transparent regions are
// composited onto white.
func ToColorArray(data []byte) (*image.RGBA, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return flatten(img), nil
}

// ToGray decodes data into an 8-bit luminance grid for OCR.
func ToGray(data []byte) (*image.Gray, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Gray(img), nil
}

// Gray converts img to luminance after flattening any alpha onto white.
func Gray(img image.Image) *image.Gray {
	src := flatten(img)
	b := src.Bounds()
	dst := image.NewGray(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// CompressForTransport shrinks the image so neither side exceeds maxDim,
// keeping the aspect ratio, and re-encodes it as JPEG. Images already within
// bounds keep their dimensions.
func CompressForTransport(data []byte, maxDim int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	var out image.Image = flatten(img)
	if w, h, ok := FitWithin(img.Bounds().Dx(), img.Bounds().Dy(), maxDim); ok {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), out, out.Bounds(), draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: TransportQuality}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode transport image")
	}
	return buf.Bytes(), nil
}

// FitWithin returns target dimensions bounded by maxDim. The longer side is
// set to maxDim and the other scaled and truncated; ok is false when no
// resize is needed.
func FitWithin(w, h, maxDim int) (int, int, bool) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h, false
	}
	if w > h {
		return maxDim, max(1, h*maxDim/w), true
	}
	return max(1, w*maxDim/h), maxDim, true
}

func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
