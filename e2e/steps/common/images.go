//go:build e2e

package common

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// PNG renders a small gray card with a shifted dark block so that every seed
// produces distinct bytes.
func PNG(seed int) []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, card(seed))
	return buf.Bytes()
}

// JPEG is PNG's counterpart for endpoints that compress frames.
func JPEG(seed int) []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, card(seed), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func card(seed int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 320, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 320; x++ {
			img.SetGray(x, y, color.Gray{Y: 230})
		}
	}
	ox := 20 + (seed*37)%200
	for y := 60; y < 140; y++ {
		for x := ox; x < ox+60; x++ {
			img.SetGray(x, y, color.Gray{Y: 20})
		}
	}
	return img
}
