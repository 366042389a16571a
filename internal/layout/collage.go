package layout

import (
	"github.com/kozaktomas/print-layout/internal/gesture"
)

// CollageConfig is the immutable input of a collage layout computation.
type CollageConfig struct {
	TemplateID  string
	PageSize    PageSize
	Orientation Orientation
}

// CollageSlot is one image resolved onto its template slot. Transform is set
// only when manual transforms were supplied for the image.
type CollageSlot struct {
	Image     Image              `json:"image"`
	SlotID    string             `json:"slot_id"`
	Rect      Rect               `json:"rect"`
	Transform *gesture.Transform `json:"transform,omitempty"`
}

// CollagePage is a collage laid out on a single oriented page.
type CollagePage struct {
	Template Template      `json:"template"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Slots    []CollageSlot `json:"slots"`
}

// BuildCollage resolves the chosen template onto the oriented page and pairs
// slots with images in order. Slots beyond the number of images are skipped.
// When transforms is non-nil each slot carries the transform stored for its
// image id, or the default transform when none is stored.
func BuildCollage(cfg CollageConfig, catalog *Catalog, images []Image, transforms map[string]gesture.Transform) (CollagePage, error) {
	for _, img := range images {
		if err := img.Validate(); err != nil {
			return CollagePage{}, err
		}
	}

	tmpl, err := catalog.Choose(cfg.TemplateID, len(images))
	if err != nil {
		return CollagePage{}, err
	}

	return placeCollage(tmpl, cfg.PageSize.Oriented(cfg.Orientation), images, transforms), nil
}

// placeCollage pairs the template's slots with images in order on an already
// oriented page. Slots beyond the number of images are left empty.
func placeCollage(tmpl Template, page PageSize, images []Image, transforms map[string]gesture.Transform) CollagePage {
	rects := ResolveSlots(tmpl, page.Width, page.Height)

	out := CollagePage{
		Template: tmpl,
		Width:    page.Width,
		Height:   page.Height,
		Slots:    make([]CollageSlot, 0, min(len(rects), len(images))),
	}
	for i, rect := range rects {
		if i >= len(images) {
			break
		}
		slot := CollageSlot{
			Image:  images[i],
			SlotID: tmpl.Slots[i].ID,
			Rect:   rect,
		}
		if transforms != nil {
			tr, ok := transforms[images[i].ID]
			if !ok {
				tr = gesture.DefaultTransform()
			}
			slot.Transform = &tr
		}
		out.Slots = append(out.Slots, slot)
	}
	return out
}
