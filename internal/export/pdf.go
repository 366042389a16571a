// Package export renders computed layouts to PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/jung-kurt/gofpdf/v2"
	"golang.org/x/image/draw"

	"github.com/kozaktomas/print-layout/internal/constants"
	"github.com/kozaktomas/print-layout/internal/gesture"
	"github.com/kozaktomas/print-layout/internal/layout"
)

// ErrNoImageData is returned when an image handle cannot be opened.
var ErrNoImageData = errors.New("image handle has no readable data")

// Opener is implemented by image handles that can be read, such as
// imageload sources.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// Options tunes image embedding.
type Options struct {
	// JPEGQuality is used when an image must be re-encoded.
	JPEGQuality int
	// MaxImageSide caps the longest side of re-encoded images; 0 keeps the size.
	MaxImageSide int
}

// DefaultOptions returns the standard export options.
func DefaultOptions() Options {
	return Options{JPEGQuality: constants.DefaultJPEGQuality, MaxImageSide: constants.DefaultMaxImageSide}
}

// pxToMM converts 300 DPI page pixels to millimetres.
func pxToMM(px float64) float64 {
	return px / constants.PrintDPI * constants.MMPerInch
}

type renderer struct {
	pdf        *gofpdf.Fpdf
	opts       Options
	registered map[string]bool
}

func newRenderer(opts Options) *renderer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return &renderer{pdf: pdf, opts: opts, registered: make(map[string]bool)}
}

func (r *renderer) addPage(widthPx, heightPx int) {
	// "P" keeps the given width and height; "L" would swap them.
	r.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pxToMM(float64(widthPx)), Ht: pxToMM(float64(heightPx))})
}

// register embeds the image once per id and returns its gofpdf name.
func (r *renderer) register(img layout.Image) (string, error) {
	name := img.ID
	if r.registered[name] {
		return name, nil
	}

	opener, ok := img.Handle.(Opener)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoImageData, img.ID)
	}
	rc, err := opener.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image %s: %w", img.ID, err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return "", fmt.Errorf("failed to read image %s: %w", img.ID, err)
	}

	data, imageType, err := r.embeddable(data)
	if err != nil {
		return "", fmt.Errorf("failed to prepare image %s: %w", img.ID, err)
	}

	r.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if err := r.pdf.Error(); err != nil {
		return "", fmt.Errorf("failed to embed image %s: %w", img.ID, err)
	}
	r.registered[name] = true
	return name, nil
}

// embeddable returns image bytes in a format gofpdf can embed. JPEG and
// PNG pass through unless they exceed MaxImageSide; everything else is
// re-encoded as JPEG.
func (r *renderer) embeddable(data []byte) ([]byte, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image config: %w", err)
	}
	tooLarge := r.opts.MaxImageSide > 0 && max(cfg.Width, cfg.Height) > r.opts.MaxImageSide
	switch {
	case format == "jpeg" && !tooLarge:
		return data, "JPG", nil
	case format == "png" && !tooLarge:
		return data, "PNG", nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	if tooLarge {
		img = resize(img, r.opts.MaxImageSide)
	}

	quality := r.opts.JPEGQuality
	if quality <= 0 {
		quality = constants.DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), "JPG", nil
}

// resize scales img so its longest side is maxSide, keeping aspect ratio.
func resize(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var newWidth, newHeight int
	if width > height {
		newWidth = maxSide
		newHeight = max(1, int(float64(height)*float64(maxSide)/float64(width)))
	} else {
		newHeight = maxSide
		newWidth = max(1, int(float64(width)*float64(maxSide)/float64(height)))
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
	return resized
}

// drawRotated draws an image of w x h (mm) centred on (cx, cy), rotated
// counter-clockwise by angle degrees about its centre.
func (r *renderer) drawRotated(name string, cx, cy, w, h, angle float64) {
	r.pdf.TransformBegin()
	if angle != 0 {
		r.pdf.TransformRotate(angle, cx, cy)
	}
	r.pdf.ImageOptions(name, cx-w/2, cy-h/2, w, h, false,
		gofpdf.ImageOptions{AllowNegativePosition: true}, 0, "")
	r.pdf.TransformEnd()
}

func (r *renderer) output(w io.Writer) error {
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// WriteGridPDF renders grid pages, one PDF page per layout page. Rotated
// placements are drawn turned 90 degrees about the centre of their box.
func WriteGridPDF(w io.Writer, pages []layout.Page, opts Options) error {
	if len(pages) == 0 {
		return errors.New("no pages to export")
	}
	r := newRenderer(opts)
	for _, page := range pages {
		r.addPage(page.Width, page.Height)
		for _, pi := range page.Placements {
			name, err := r.register(pi.Image)
			if err != nil {
				return err
			}
			p := pi.Placement
			cx := pxToMM(p.X + p.Width/2)
			cy := pxToMM(p.Y + p.Height/2)
			if p.Rotated {
				// The image's width runs along the box height.
				r.drawRotated(name, cx, cy, pxToMM(p.Height), pxToMM(p.Width), 90)
			} else {
				r.drawRotated(name, cx, cy, pxToMM(p.Width), pxToMM(p.Height), 0)
			}
		}
	}
	return r.output(w)
}

// WriteCollagePDF renders a collage page. Every image is clipped to its
// slot with its manual transform applied.
func WriteCollagePDF(w io.Writer, page layout.CollagePage, opts Options) error {
	r := newRenderer(opts)
	r.addPage(page.Width, page.Height)
	for _, slot := range page.Slots {
		name, err := r.register(slot.Image)
		if err != nil {
			return err
		}
		tr := gesture.Transform{Scale: 1, OffsetX: constants.DefaultOffsetX, OffsetY: constants.DefaultOffsetY}
		if slot.Transform != nil {
			tr = *slot.Transform
		}
		box := SlotDrawBox(slot.Image, slot.Rect, tr)

		rect := slot.Rect
		r.pdf.ClipRect(pxToMM(rect.X), pxToMM(rect.Y), pxToMM(rect.Width), pxToMM(rect.Height), false)
		// Screen rotation is clockwise, PDF rotation counter-clockwise.
		r.drawRotated(name, pxToMM(box.CenterX), pxToMM(box.CenterY), pxToMM(box.Width), pxToMM(box.Height), -box.Rotation)
		r.pdf.ClipEnd()
	}
	return r.output(w)
}

// DrawBox is where an image lands inside a collage slot, in page pixels,
// before clipping. Rotation is clockwise in degrees about the centre.
type DrawBox struct {
	CenterX  float64
	CenterY  float64
	Width    float64
	Height   float64
	Rotation float64
}

// SlotDrawBox composes the manual transform onto a slot. The image first
// covers the slot, then is scaled by tr.Scale and moved by the offsets,
// which are percentages of the slot size. The default offset centres it.
func SlotDrawBox(img layout.Image, slot layout.Rect, tr gesture.Transform) DrawBox {
	scale := tr.Scale
	if scale <= 0 {
		scale = 1
	}
	cover := max(slot.Width/float64(img.Width), slot.Height/float64(img.Height))
	return DrawBox{
		CenterX:  slot.X + slot.Width/2 + (tr.OffsetX-constants.DefaultOffsetX)/100*slot.Width,
		CenterY:  slot.Y + slot.Height/2 + (tr.OffsetY-constants.DefaultOffsetY)/100*slot.Height,
		Width:    float64(img.Width) * cover * scale,
		Height:   float64(img.Height) * cover * scale,
		Rotation: tr.Rotation,
	}
}
