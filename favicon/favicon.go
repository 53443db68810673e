// Package favicon renders the new site's favicon set from a logo image.
package favicon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/folioworks/folio"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Icon is one square PNG file of the favicon set.
type Icon struct {
	Name string
	Size int
}

// Icons lists the PNG files written by Generate.
var Icons = []Icon{
	{Name: "icon.png", Size: 32},
	{Name: "icon-16x16.png", Size: 16},
	{Name: "icon-32x32.png", Size: 32},
	{Name: "apple-icon.png", Size: 180},
}

// ICOName is the multi-size icon written by Generate.
const ICOName = "favicon.ico"

// ICOSizes lists the sizes embedded in ICOName.
var ICOSizes = []int{16, 32, 48}

// Decode reads a PNG, JPEG, GIF or WebP logo.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "unsupported logo image: %v", err)
	}
	return img, nil
}

// Generate writes every file in Icons plus ICOName into dir and returns
// the written paths.
func Generate(src image.Image, dir string) ([]string, error) {
	if b := src.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, folio.Errorf(folio.EINVALID, "logo image is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []string
	for _, icon := range Icons {
		var buf bytes.Buffer
		if err := png.Encode(&buf, Resize(src, icon.Size)); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", icon.Name, err)
		}
		path := filepath.Join(dir, icon.Name)
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	images := make([]image.Image, len(ICOSizes))
	for i, size := range ICOSizes {
		images[i] = Resize(src, size)
	}
	var buf bytes.Buffer
	if err := EncodeICO(&buf, images); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, ICOName)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, err
	}
	return append(written, path), nil
}

// Resize scales src to fit a size x size square with Catmull-Rom
// resampling. Non-square logos keep their aspect ratio and are centered on
// a transparent background.
func Resize(src image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))

	sb := src.Bounds()
	w, h := size, size
	if sb.Dx() > sb.Dy() {
		h = max(1, size*sb.Dy()/sb.Dx())
	} else if sb.Dy() > sb.Dx() {
		w = max(1, size*sb.Dx()/sb.Dy())
	}
	x0, y0 := (size-w)/2, (size-h)/2

	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, sb, draw.Over, nil)
	return dst
}

// EncodeICO writes images as a Windows icon with PNG-compressed entries.
// Each image must be square and at most 256 pixels wide.
func EncodeICO(w io.Writer, images []image.Image) error {
	if len(images) == 0 {
		return folio.Errorf(folio.EINVALID, "icon needs at least one image")
	}

	entries := make([][]byte, len(images))
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() != b.Dy() || b.Dx() < 1 || b.Dx() > 256 {
			return folio.Errorf(folio.EINVALID, "icon image %d is %dx%d", i, b.Dx(), b.Dy())
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		entries[i] = buf.Bytes()
	}

	const (
		headerSize = 6
		entrySize  = 16
	)

	var out bytes.Buffer
	header := []uint16{0, 1, uint16(len(images))}
	if err := binary.Write(&out, binary.LittleEndian, header); err != nil {
		return err
	}

	offset := uint32(headerSize + entrySize*len(images))
	for i, img := range images {
		side := img.Bounds().Dx()
		dim := uint8(side)
		if side == 256 {
			dim = 0
		}
		entry := struct {
			Width, Height    uint8
			Colors, Reserved uint8
			Planes, BitCount uint16
			Size, Offset     uint32
		}{dim, dim, 0, 0, 1, 32, uint32(len(entries[i])), offset}
		if err := binary.Write(&out, binary.LittleEndian, entry); err != nil {
			return err
		}
		offset += uint32(len(entries[i]))
	}
	for _, data := range entries {
		out.Write(data)
	}

	_, err := w.Write(out.Bytes())
	return err
}
