// Package escpos speaks the minimal ESC/POS subset a networked thermal
// printer needs for label output: initialize, raster image (GS v 0),
// plain text, paper feed.
package escpos

import (
	"fmt"
	"image"
	"net"
	"time"
)

const dialTimeout = 5 * time.Second

// Conn is one printer session. Not safe for concurrent use; callers open
// one per print job and close it when done.
type Conn struct {
	nc net.Conn
}

// Dial connects to the printer and sends ESC @ to reset its state.
func Dial(addr string) (*Conn, error) {
	nc, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("printer dial %s: %w", addr, err)
	}
	c := &Conn{nc: nc}
	if err := c.write([]byte{0x1b, 0x40}); err != nil {
		nc.Close()
		return nil, err
	}
	return c, nil
}

// SendImage transmits the image as a GS v 0 raster block.
func (c *Conn) SendImage(img image.Image) error {
	width, height, bitmap := rasterize(img)
	widthBytes := (width + 7) >> 3

	header := []byte{0x1d, 0x76, 0x30, 0x00}
	header = append(header, intLowHigh(widthBytes, 2)...)
	header = append(header, intLowHigh(height, 2)...)

	if err := c.write(header); err != nil {
		return err
	}
	return c.write(bitmap)
}

func (c *Conn) SendText(s string) error {
	return c.write([]byte(s))
}

// Feed advances n blank lines past the tear bar.
func (c *Conn) Feed(n int) error {
	if n <= 0 {
		return nil
	}
	return c.write([]byte{0x1b, 0x64, byte(n)})
}

func (c *Conn) Close() error {
	return c.nc.Close()
}

func (c *Conn) write(b []byte) error {
	if _, err := c.nc.Write(b); err != nil {
		return fmt.Errorf("printer write: %w", err)
	}
	return nil
}

// rasterize packs the image into the printer's 1bpp row-major format,
// MSB first, one bit per dot, dark pixels set.
func rasterize(img image.Image) (width, height int, data []byte) {
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	widthBytes := (width + 7) >> 3
	data = make([]byte, widthBytes*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// quick luminance threshold, same cut the dymo path uses
			lum := (r*299 + g*587 + bl*114) / 1000
			if lum <= 0x8000 {
				data[y*widthBytes+x>>3] |= 1 << (7 - uint(x&7))
			}
		}
	}
	return width, height, data
}

// intLowHigh encodes n as count little-endian bytes.
func intLowHigh(n, count int) []byte {
	out := make([]byte, count)
	for i := 0; i < count; i++ {
		out[i] = byte(n >> (8 * i))
	}
	return out
}
