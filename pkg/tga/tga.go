// Package tga implements the Targa image format used for id Tech 3
// textures: uncompressed (type 2) and RLE compressed (type 10)
// true-color images at 24 or 32 bits per pixel.
package tga

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
)

// TGA format errors.
var (
	ErrUnsupportedType  = errors.New("unsupported TGA image type")
	ErrUnsupportedDepth = errors.New("unsupported TGA pixel depth")
	ErrTruncated        = errors.New("truncated TGA data")
	ErrImageTooLarge    = errors.New("image dimensions exceed TGA limits")
)

// TGA image type constants.
const (
	TypeUncompressed = 2  // Uncompressed true-color
	TypeRLE          = 10 // RLE compressed true-color
)

const headerSize = 18

// Decode decodes a TGA image. Color-mapped images are not supported;
// the pixel origin is normalized so y=0 is the top row.
func Decode(data []byte) (*image.RGBA, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(binary.LittleEndian.Uint16(data[12:14]))
	height := int(binary.LittleEndian.Uint16(data[14:16]))
	depth := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedType)
	}
	if imageType != TypeUncompressed && imageType != TypeRLE {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedType, imageType)
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	offset := headerSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: ID field", ErrTruncated)
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bpp := depth / 8

	// Bit 5 of the descriptor means rows are stored top to bottom.
	topToBottom := descriptor&0x20 != 0

	if imageType == TypeUncompressed {
		if len(pixelData) < width*height*bpp {
			return nil, fmt.Errorf("%w: pixel data", ErrTruncated)
		}
		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				i := (y*width + x) * bpp
				img.SetRGBA(x, destY, pixelAt(pixelData, i, bpp))
			}
		}
		return img, nil
	}

	if err := decodeRLE(img, pixelData, width, height, bpp, topToBottom); err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeFile decodes a TGA image from disk.
func DecodeFile(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TGA file: %w", err)
	}
	return Decode(data)
}

func pixelAt(data []byte, i, bpp int) color.RGBA {
	c := color.RGBA{B: data[i], G: data[i+1], R: data[i+2], A: 255}
	if bpp == 4 {
		c.A = data[i+3]
	}
	return c
}

func decodeRLE(img *image.RGBA, pixelData []byte, width, height, bpp int, topToBottom bool) error {
	pixelCount := width * height
	pixelIdx := 0
	dataIdx := 0

	set := func(c color.RGBA) {
		x := pixelIdx % width
		y := pixelIdx / width
		destY := y
		if !topToBottom {
			destY = height - 1 - y
		}
		img.SetRGBA(x, destY, c)
		pixelIdx++
	}

	for pixelIdx < pixelCount {
		if dataIdx >= len(pixelData) {
			return fmt.Errorf("%w: RLE stream", ErrTruncated)
		}
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: one pixel value repeated.
			if dataIdx+bpp > len(pixelData) {
				return fmt.Errorf("%w: RLE packet", ErrTruncated)
			}
			c := pixelAt(pixelData, dataIdx, bpp)
			dataIdx += bpp
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				set(c)
			}
		} else {
			// Raw packet: count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bpp > len(pixelData) {
					return fmt.Errorf("%w: raw packet", ErrTruncated)
				}
				set(pixelAt(pixelData, dataIdx, bpp))
				dataIdx += bpp
			}
		}
	}
	return nil
}

// Encode encodes the image as an uncompressed (type 2) TGA with
// bottom-up row order. withAlpha selects 32-bit output; otherwise the
// alpha channel is dropped and 24-bit pixels are written.
func Encode(img image.Image, withAlpha bool) ([]byte, error) {
	return encode(img, withAlpha, false)
}

// EncodeRLE encodes the image as an RLE compressed (type 10) TGA.
// Packets never cross row boundaries.
func EncodeRLE(img image.Image, withAlpha bool) ([]byte, error) {
	return encode(img, withAlpha, true)
}

func encode(img image.Image, withAlpha, rle bool) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}

	bpp := 3
	depth := byte(24)
	descriptor := byte(0) // origin bottom-left
	if withAlpha {
		bpp = 4
		depth = 32
		descriptor = 8 // 8 alpha bits
	}
	imageType := byte(TypeUncompressed)
	if rle {
		imageType = TypeRLE
	}

	out := bytes.NewBuffer(make([]byte, 0, headerSize+width*height*bpp))
	header := [headerSize]byte{2: imageType, 16: depth, 17: descriptor}
	binary.LittleEndian.PutUint16(header[12:14], uint16(width))
	binary.LittleEndian.PutUint16(header[14:16], uint16(height))
	out.Write(header[:])

	row := make([]byte, width*bpp)
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := x * bpp
			row[i] = byte(b >> 8)
			row[i+1] = byte(g >> 8)
			row[i+2] = byte(r >> 8)
			if withAlpha {
				row[i+3] = byte(a >> 8)
			}
		}
		if rle {
			encodeRLERow(out, row, width, bpp)
		} else {
			out.Write(row)
		}
	}

	return out.Bytes(), nil
}

// encodeRLERow emits one scanline as a sequence of RLE and raw packets.
func encodeRLERow(out *bytes.Buffer, row []byte, width, bpp int) {
	pix := func(i int) []byte { return row[i*bpp : (i+1)*bpp] }
	eq := func(i, j int) bool { return bytes.Equal(pix(i), pix(j)) }

	x := 0
	for x < width {
		run := 1
		for x+run < width && run < 128 && eq(x+run, x) {
			run++
		}
		if run > 1 {
			out.WriteByte(0x80 | byte(run-1))
			out.Write(pix(x))
			x += run
			continue
		}

		// Literal packet: extend until a run of at least two starts.
		lit := 1
		for x+lit < width && lit < 128 {
			if x+lit+1 < width && eq(x+lit+1, x+lit) {
				break
			}
			lit++
		}
		out.WriteByte(byte(lit - 1))
		out.Write(row[x*bpp : (x+lit)*bpp])
		x += lit
	}
}

// WriteFile writes the image to disk as an uncompressed TGA, creating
// parent directories as needed.
func WriteFile(path string, img image.Image, withAlpha bool) error {
	data, err := Encode(img, withAlpha)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating texture directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing TGA file: %w", err)
	}
	return nil
}
