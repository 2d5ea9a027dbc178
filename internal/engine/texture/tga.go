package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types that DecodeTGA understands.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes uncompressed and RLE true-color TGA data at 24 or 32 bits
// per pixel. TGA carries no magic number so it cannot be sniffed by
// image.Decode; Load picks it by file extension instead.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("tga: color-mapped images: %w", ErrUnsupportedFormat)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: image type %d: %w", imageType, ErrUnsupportedFormat)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: %d bits per pixel: %w", bpp, ErrUnsupportedFormat)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: topToBottom,
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	stride      int
	topToBottom bool
	next        int // next destination pixel in file order
}

// pixel reads one BGR(A) pixel from the source.
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	d.pos += d.stride
	return c, true
}

// put stores c at the next pixel in file order. Bottom-up files are flipped
// so the result is always top-down.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.next % d.width
	y := d.next / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.next++
}

func (d *tgaDecoder) raw() error {
	total := d.width * d.height
	if len(d.src) < total*d.stride {
		return errTGATruncated
	}
	for d.next < total {
		c, _ := d.pixel()
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	for d.next < total {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				return errTGATruncated
			}
			for i := 0; i < count && d.next < total; i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.next < total; i++ {
			c, ok := d.pixel()
			if !ok {
				return errTGATruncated
			}
			d.put(c)
		}
	}
	return nil
}
