package views

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/software"
)

var (
	ErrInvalidSurface    = errors.New("image view has no valid surface")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ImageView presents frame buffers on a displayable surface. Frame buffer
// colors are linear and converted to sRGB on the way in.
type ImageView struct {
	surface xdraw.Image
	bounds  image.Rectangle
}

func NewImageView(surface xdraw.Image) (*ImageView, error) {
	if surface == nil {
		return nil, ErrInvalidSurface
	}
	return &ImageView{surface: surface, bounds: surface.Bounds()}, nil
}

// NewImageViewRGBA backs the view with a fresh in-memory image.
func NewImageViewRGBA(width, height int) (*ImageView, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidSurface, "size %dx%d", width, height)
	}
	return NewImageView(image.NewNRGBA(image.Rect(0, 0, width, height)))
}

func (iv *ImageView) Width() int  { return iv.bounds.Dx() }
func (iv *ImageView) Height() int { return iv.bounds.Dy() }

// Image returns the surface the view draws into.
func (iv *ImageView) Image() image.Image {
	return iv.surface
}

// Clear fills the surface with c, taken as already display encoded.
func (iv *ImageView) Clear(c math.Vec4) {
	xdraw.Draw(iv.surface, iv.bounds, image.NewUniform(toNRGBA(c)), image.Point{}, xdraw.Src)
}

// AssignPixel converts the linear color c to sRGB and stores it at (x, y),
// relative to the top left corner of the surface.
func (iv *ImageView) AssignPixel(x, y int, c math.Vec4) {
	if x < 0 || y < 0 || x >= iv.Width() || y >= iv.Height() {
		core.LogWarn("tried to assign color to invalid pixel (%d,%d), image view size is (%d,%d)", x, y, iv.Width(), iv.Height())
		return
	}
	iv.surface.Set(iv.bounds.Min.X+x, iv.bounds.Min.Y+y, linearToSRGB(c))
}

// CopyFrameBuffer presents the color target of fb. When sizes differ only
// the overlapping region is copied.
func (iv *ImageView) CopyFrameBuffer(fb *software.FrameBuffer) {
	if fb.Width() != iv.Width() || fb.Height() != iv.Height() {
		core.LogWarn("frame buffer is %dx%d but image view is %dx%d", fb.Width(), fb.Height(), iv.Width(), iv.Height())
	}
	w := min(fb.Width(), iv.Width())
	h := min(fb.Height(), iv.Height())
	colors := fb.Color()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			iv.surface.Set(iv.bounds.Min.X+x, iv.bounds.Min.Y+y, linearToSRGB(colors.At(colors.PixelIndex(x, y))))
		}
	}
}

// Save encodes the surface to path, picking the format from the extension
// (.png, .bmp, .tif or .tiff). A scale above 1 enlarges every pixel into a
// scale x scale block.
func (iv *ImageView) Save(path string, scale int) error {
	var img image.Image = iv.surface
	if scale > 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, iv.Width()*scale, iv.Height()*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), iv.surface, iv.bounds, xdraw.Src, nil)
		img = dst
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".bmp", ".tif", ".tiff":
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "extension %q", ext)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	switch ext {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", path)
	}
	core.LogDebug("saved %dx%d image to %s", img.Bounds().Dx(), img.Bounds().Dy(), path)
	return nil
}

func linearToSRGB(c math.Vec4) color.NRGBA {
	r, g, b := colorful.LinearRgb(float64(c.X), float64(c.Y), float64(c.Z)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: channel(c.W)}
}

func toNRGBA(c math.Vec4) color.NRGBA {
	return color.NRGBA{R: channel(c.X), G: channel(c.Y), B: channel(c.Z), A: channel(c.W)}
}

func channel(v float32) uint8 {
	return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
}
