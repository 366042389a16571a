package layout

import (
	"fmt"
)

// Image is a loaded image reference. Handle is opaque to the engine
// (a file path, a pointer to decoded pixels, anything the caller owns).
type Image struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Handle any    `json:"-"`
}

// Validate rejects images without positive dimensions.
func (img Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: image %q is %dx%d", ErrInvalidImage, img.ID, img.Width, img.Height)
	}
	return nil
}

// PlacedImage is an image together with its destination on a page.
type PlacedImage struct {
	Image     Image     `json:"image"`
	Placement Placement `json:"placement"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
}

// Page is one printable page of a grid layout.
type Page struct {
	Index      int           `json:"index"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Cell       Cell          `json:"cell"`
	Placements []PlacedImage `json:"placements"`
}

// GridConfig is the immutable input of a grid layout computation.
type GridConfig struct {
	PageSize PageSize
	Rows     int
	Cols     int
	Stretch  bool
}

// Shape returns the grid shape of the config.
func (c GridConfig) Shape() GridShape {
	return GridShape{Rows: c.Rows, Cols: c.Cols}
}

// Validate checks the grid shape and page size.
func (c GridConfig) Validate() error {
	if err := c.Shape().Validate(); err != nil {
		return err
	}
	if c.PageSize.Width <= 0 || c.PageSize.Height <= 0 {
		return fmt.Errorf("%w: %q is %dx%d", ErrUnknownPageSize, c.PageSize.Name, c.PageSize.Width, c.PageSize.Height)
	}
	return nil
}

// BuildGridPages lays images out on as many pages as needed.
// Pages are always recomputed from scratch; zero images yields zero pages.
func BuildGridPages(cfg GridConfig, images []Image) ([]Page, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, img := range images {
		if err := img.Validate(); err != nil {
			return nil, err
		}
	}

	cell := CellDimensions(cfg.PageSize, cfg.Rows, cfg.Cols)
	chunks := Paginate(images, cfg.Shape())
	pages := make([]Page, 0, len(chunks))
	for i, chunk := range chunks {
		pages = append(pages, buildPage(i, cfg, cell, chunk))
	}
	return pages, nil
}

// BuildFlyerPage fills every cell of a single page with the same image.
func BuildFlyerPage(cfg GridConfig, img Image) (Page, error) {
	if err := cfg.Validate(); err != nil {
		return Page{}, err
	}
	if err := img.Validate(); err != nil {
		return Page{}, err
	}

	copies := make([]Image, cfg.Shape().PerPage())
	for i := range copies {
		copies[i] = img
	}
	cell := CellDimensions(cfg.PageSize, cfg.Rows, cfg.Cols)
	return buildPage(0, cfg, cell, copies), nil
}

func buildPage(index int, cfg GridConfig, cell Cell, images []Image) Page {
	page := Page{
		Index:      index,
		Width:      cfg.PageSize.Width,
		Height:     cfg.PageSize.Height,
		Cell:       cell,
		Placements: make([]PlacedImage, 0, len(images)),
	}
	for k, img := range images {
		row, col := CellPosition(k, cfg.Cols)
		cellX := float64(col * cell.Width)
		cellY := float64(row * cell.Height)
		p := PlaceImage(img.Width, img.Height, cell, cfg.Stretch)
		page.Placements = append(page.Placements, PlacedImage{
			Image:     img,
			Placement: CenterInCell(p, cellX, cellY, cell),
			Row:       row,
			Col:       col,
		})
	}
	return page
}

// CellRect returns the absolute rectangle of the cell at (row, col).
func (p Page) CellRect(row, col int) Rect {
	return Rect{
		X:      float64(col * p.Cell.Width),
		Y:      float64(row * p.Cell.Height),
		Width:  float64(p.Cell.Width),
		Height: float64(p.Cell.Height),
	}
}
