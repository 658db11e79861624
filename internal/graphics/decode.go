package graphics

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBufferBytes bounds a single decoded page (256 MiB).
const DefaultMaxBufferBytes int64 = 256 << 20

// Decoder turns page bytes into pixel buffers.
type Decoder struct {
	Channels int
	MaxBytes int64
}

// NewDecoder returns a decoder exporting the given channel layout.
func NewDecoder(channels int, maxBytes int64) *Decoder {
	if channels == 0 {
		channels = ChannelsRGBA
	}
	return &Decoder{Channels: channels, MaxBytes: maxBytes}
}

// Decode reads the image header first so oversized pages fail with
// ErrAllocation before any pixel memory is committed. Data that is not an
// image, including a header declaring an empty image, yields a *DecodeError.
func (d *Decoder) Decode(data []byte) (*PixelBuffer, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, &DecodeError{Err: fmt.Errorf("header declares a %dx%d image", cfg.Width, cfg.Height)}
	}
	buf, err := NewPixelBuffer(cfg.Width, cfg.Height, d.Channels, d.MaxBytes)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		buf.Release()
		return nil, &DecodeError{Err: err}
	}
	if err := export(buf, src); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

func export(buf *PixelBuffer, src image.Image) error {
	bounds := src.Bounds()
	if bounds.Dx() != buf.Width || bounds.Dy() != buf.Height {
		return &DecodeError{Err: fmt.Errorf("image is %dx%d, header declared %dx%d", bounds.Dx(), bounds.Dy(), buf.Width, buf.Height)}
	}
	rect := image.Rect(0, 0, buf.Width, buf.Height)
	if buf.Channels == ChannelsRGBA {
		dst := &image.NRGBA{Pix: buf.pix, Stride: buf.Stride, Rect: rect}
		draw.Draw(dst, rect, src, bounds.Min, draw.Src)
		return nil
	}

	tmp := image.NewNRGBA(rect)
	draw.Draw(tmp, rect, src, bounds.Min, draw.Src)
	for y := 0; y < buf.Height; y++ {
		row := buf.Row(y)
		from := tmp.Pix[y*tmp.Stride:]
		for x := 0; x < buf.Width; x++ {
			copy(row[x*3:x*3+3], from[x*4:x*4+3])
		}
	}
	return nil
}
