package interaction

import "github.com/custodia-labs/listing-studio/internal/core/domain"

// Point is a pointer position in page pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a bounding box in page pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty returns true if the box has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// PercentOf converts a point into a clamped position relative to r.
func (r Rect) PercentOf(pt Point) domain.Position {
	return domain.Position{
		X: (pt.X - r.Left) / r.Width * 100,
		Y: (pt.Y - r.Top) / r.Height * 100,
	}.Clamp()
}
