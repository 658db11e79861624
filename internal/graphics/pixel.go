package graphics

import (
	"fmt"
	"image"
)

// Supported channel layouts for exported pixels.
const (
	ChannelsRGB  = 3
	ChannelsRGBA = 4
)

// PixelBuffer is a decoded page: 8-bit channels, unassociated alpha, rows of
// Stride bytes. A buffer belongs to one frame and is released once encoded.
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Stride   int
	pix      []byte
}

// NewPixelBuffer allocates a zeroed buffer, refusing geometries whose size
// would exceed limit bytes (limit <= 0 means unlimited).
func NewPixelBuffer(width, height, channels int, limit int64) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid geometry %dx%d", ErrAllocation, width, height)
	}
	if channels != ChannelsRGB && channels != ChannelsRGBA {
		return nil, fmt.Errorf("%w: unsupported channel count %d", ErrAllocation, channels)
	}
	size := int64(width) * int64(height) * int64(channels)
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %dx%d image needs %d bytes, limit is %d", ErrAllocation, width, height, size, limit)
	}
	if size > int64(maxInt) {
		return nil, fmt.Errorf("%w: %d bytes overflows", ErrAllocation, size)
	}
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Stride:   width * channels,
		pix:      make([]byte, int(size)),
	}, nil
}

const maxInt = int(^uint(0) >> 1)

// Bytes exposes the owned pixel region; it is nil after Release.
func (b *PixelBuffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.pix
}

// Row returns the bytes of row y, or nil when y is out of range.
func (b *PixelBuffer) Row(y int) []byte {
	if b == nil || b.pix == nil || y < 0 || y >= b.Height {
		return nil
	}
	start := y * b.Stride
	return b.pix[start : start+b.Width*b.Channels]
}

// Release drops the pixel memory. The buffer must not be used afterwards.
func (b *PixelBuffer) Release() {
	if b == nil {
		return
	}
	b.pix = nil
}

// Released reports whether Release has been called.
func (b *PixelBuffer) Released() bool {
	return b == nil || b.pix == nil
}

// Image views the buffer as an image.Image. RGBA buffers are shared without
// copying; RGB buffers are expanded with an opaque alpha channel.
func (b *PixelBuffer) Image() (image.Image, error) {
	if b.Released() {
		return nil, fmt.Errorf("pixel buffer already released")
	}
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Channels == ChannelsRGBA {
		return &image.NRGBA{Pix: b.pix, Stride: b.Stride, Rect: rect}, nil
	}
	img := image.NewNRGBA(rect)
	for y := 0; y < b.Height; y++ {
		src := b.Row(y)
		dst := img.Pix[y*img.Stride : y*img.Stride+b.Width*4]
		for x := 0; x < b.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img, nil
}
