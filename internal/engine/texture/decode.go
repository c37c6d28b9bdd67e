// Package texture provides image decoding and pixel conversion for
// material texture maps.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// Load reads and decodes a texture file into RGBA pixels. PNG, JPEG,
// and BMP go through the registered stdlib decoders; TGA (common in
// model exports but unsupported by the image registry) is handled by
// the extension-based fallback.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", filepath.Base(path), err)
	}

	return ToRGBA(img), nil
}

// ToRGBA converts any decoded image to *image.RGBA, the only pixel
// layout the GPU upload path accepts.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return rgba
}

// ToGray collapses an RGBA image to its red channel. Roughness and
// metallic maps are greyscale; uploading a single channel and
// swizzling it across RGBA keeps them compact on the GPU.
func ToGray(img *image.RGBA) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Pix[gray.PixOffset(x, y)] = img.Pix[img.PixOffset(x, y)]
		}
	}
	return gray
}
