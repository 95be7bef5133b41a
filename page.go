package papercraft

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

type PageFormat string

const (
	PageA4     PageFormat = "A4"
	PageA3     PageFormat = "A3"
	PageLetter PageFormat = "Letter"
)

// portrait sizes in millimetres
var pageSizes = map[PageFormat]r2.Vec{
	PageA4:     {X: 210, Y: 297},
	PageA3:     {X: 297, Y: 420},
	PageLetter: {X: 216, Y: 279},
}

// ParsePageFormat matches format names case-insensitively.
func ParsePageFormat(name string) (PageFormat, error) {
	for f := range pageSizes {
		if strings.EqualFold(string(f), strings.TrimSpace(name)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown page format %q", ErrInvalidConfig, name)
}

type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PageSettings describes the physical sheet for paged layout.
type PageSettings struct {
	Format      PageFormat  `yaml:"format" toml:"format" json:"format"`
	Orientation Orientation `yaml:"orientation" toml:"orientation" json:"orientation"`
	PrintMargin float64     `yaml:"print_margin" toml:"print_margin" json:"print_margin"`
	TitleBand   float64     `yaml:"title_band" toml:"title_band" json:"title_band"`
}

func DefaultPageSettings() PageSettings {
	return PageSettings{
		Format:      PageA4,
		Orientation: Portrait,
		PrintMargin: 10,
		TitleBand:   25,
	}
}

// Size returns the sheet width and height after orientation.
func (p PageSettings) Size() (r2.Vec, error) {
	size, ok := pageSizes[p.Format]
	if !ok {
		return r2.Vec{}, fmt.Errorf("%w: unknown page format %q", ErrInvalidConfig, string(p.Format))
	}
	switch p.Orientation {
	case Portrait, "":
		return size, nil
	case Landscape:
		return r2.Vec{X: size.Y, Y: size.X}, nil
	}
	return r2.Vec{}, fmt.Errorf("%w: unknown orientation %q", ErrInvalidConfig, string(p.Orientation))
}

// PrintableArea returns the region of the sheet pieces may occupy, in sheet
// coordinates. The title band is taken from the top of the sheet.
func (p PageSettings) PrintableArea() (BBox, error) {
	size, err := p.Size()
	if err != nil {
		return BBox{}, err
	}
	area := BBox{
		Min: r2.Vec{X: p.PrintMargin, Y: p.PrintMargin},
		Max: r2.Vec{X: size.X - p.PrintMargin, Y: size.Y - p.PrintMargin - p.TitleBand},
	}
	if area.Width() <= 0 || area.Height() <= 0 {
		return BBox{}, fmt.Errorf("%w: margins leave no printable area on %s", ErrInvalidConfig, p.Format)
	}
	return area, nil
}

func (p PageSettings) Validate() error {
	_, err := p.PrintableArea()
	return err
}
