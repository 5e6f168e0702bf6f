package texture

import (
	"image"
	"math"
)

// DefaultGlow generates the standard volumetric line texture: a radial
// falloff centred in the texture. With the strip UV layout the centre
// column shades the line body across its width and the left and right
// halves shade the rounded end caps.
func DefaultGlow(size int) *image.NRGBA {
	if size < 2 {
		size = 2
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	inv := 1 / float64(size-1)
	for y := 0; y < size; y++ {
		dy := (float64(y)*inv - 0.5) * 2
		for x := 0; x < size; x++ {
			dx := (float64(x)*inv - 0.5) * 2
			d := math.Sqrt(dx*dx + dy*dy)
			a := 1 - d
			if a < 0 {
				a = 0
			}
			a *= a
			i := img.PixOffset(x, y)
			img.Pix[i] = 255
			img.Pix[i+1] = 255
			img.Pix[i+2] = 255
			img.Pix[i+3] = uint8(a*255 + 0.5)
		}
	}
	return img
}
