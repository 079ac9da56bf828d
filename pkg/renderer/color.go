package renderer

import (
	"image"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// QuantizeColor converts linear radiance to 8-bit RGB: gamma 2 (component-wise sqrt),
// clamp to [0,1], then scale by 255.999 and truncate
func QuantizeColor(c core.Vec3) [3]uint8 {
	c = c.Sqrt().Clamp(0.0, 1.0)
	return [3]uint8{toByte(c.X), toByte(c.Y), toByte(c.Z)}
}

func toByte(v float64) uint8 {
	// sqrt of a negative component is NaN, which survives clamping
	if math.IsNaN(v) {
		return 0
	}
	return uint8(255.999 * v)
}

// PixelsToImage copies a packed RGB buffer, top row first, into an opaque *image.RGBA
func PixelsToImage(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.Pix[i*4+0] = pixels[i*3+0]
		img.Pix[i*4+1] = pixels[i*3+1]
		img.Pix[i*4+2] = pixels[i*3+2]
		img.Pix[i*4+3] = 255
	}
	return img
}
