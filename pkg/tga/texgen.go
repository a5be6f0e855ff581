package tga

import (
	"image"
	"image/color"
	"math"
)

// SolidColor returns a width by height image filled with one color.
func SolidColor(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Checkerboard returns a two-color checker pattern. The cell at the
// origin uses c2, matching the classic magenta-and-black missing
// texture when called with c1 magenta and c2 black.
func Checkerboard(width, height, checkSize int, c1, c2 color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := c2
			if (x/checkSize+y/checkSize)%2 == 1 {
				c = c1
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Gradient returns a linear blend from start to end. Vertical
// gradients run top to bottom, horizontal ones left to right.
func Gradient(width, height int, start, end color.RGBA, vertical bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var t float64
			if vertical {
				if height > 1 {
					t = float64(y) / float64(height-1)
				}
			} else {
				if width > 1 {
					t = float64(x) / float64(width-1)
				}
			}
			img.SetRGBA(x, y, lerpColor(start, end, t))
		}
	}
	return img
}

// Wood returns a procedural wood grain texture built from overlapping
// sine waves.
func Wood(width, height int) *image.RGBA {
	dark := color.RGBA{R: 100, G: 60, B: 30, A: 255}
	light := color.RGBA{R: 180, G: 120, B: 60, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			noise := math.Sin(float64(x)*0.1+float64(y)*0.02)*0.5 + 0.5
			noise += math.Sin(float64(y)*0.15) * 0.3
			noise = math.Max(0, math.Min(1, noise))
			img.SetRGBA(x, y, lerpColor(dark, light, noise))
		}
	}
	return img
}

// Tint blends every pixel toward the tint color by strength in [0,1],
// leaving alpha untouched. Used to derive team color variants from a
// base texture.
func Tint(img image.Image, tint color.RGBA, strength float64) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			c := color.RGBA{
				R: blendChannel(uint8(r16>>8), tint.R, strength),
				G: blendChannel(uint8(g16>>8), tint.G, strength),
				B: blendChannel(uint8(b16>>8), tint.B, strength),
				A: uint8(a16 >> 8),
			}
			out.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, c)
		}
	}
	return out
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: blendChannel(a.R, b.R, t),
		G: blendChannel(a.G, b.G, t),
		B: blendChannel(a.B, b.B, t),
		A: blendChannel(a.A, b.A, t),
	}
}

func blendChannel(from, to uint8, t float64) uint8 {
	v := float64(from)*(1-t) + float64(to)*t
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v)
}
