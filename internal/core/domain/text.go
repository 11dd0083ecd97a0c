package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// remPixels is the pixel size of one rem used when converting pixel sizes.
const remPixels = 16.0

// FontSize is a font size in rem.
// It decodes from a bare number (rem) or a string with a px, rem or em suffix.
type FontSize float64

// ParseFontSize converts a CSS-like size string into rem.
func ParseFontSize(in string) (FontSize, error) {
	s := strings.TrimSpace(strings.ToLower(in))
	scale := 1.0
	switch {
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
		scale = 1 / remPixels
	case strings.HasSuffix(s, "rem"):
		s = strings.TrimSuffix(s, "rem")
	case strings.HasSuffix(s, "em"):
		s = strings.TrimSuffix(s, "em")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: font size %q", ErrInvalidInput, in)
	}
	return FontSize(v * scale), nil
}

// UnmarshalJSON accepts numbers and unit-suffixed strings.
func (f *FontSize) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseFontSize(s)
		if err != nil {
			return err
		}
		*f = v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FontSize(v)
	return nil
}

// String renders the size as a CSS rem value.
func (f FontSize) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64) + "rem"
}

// FontFamily is one of the allowed page typefaces.
type FontFamily string

// Allowed font families.
const (
	FontInter           FontFamily = "Inter"
	FontPlayfairDisplay FontFamily = "Playfair Display"
	FontMontserrat      FontFamily = "Montserrat"
	FontLora            FontFamily = "Lora"
	FontRoboto          FontFamily = "Roboto"
	FontOpenSans        FontFamily = "Open Sans"
)

// IsValid returns true if the family is in the allowed set.
func (f FontFamily) IsValid() bool {
	switch f {
	case FontInter, FontPlayfairDisplay, FontMontserrat, FontLora, FontRoboto, FontOpenSans:
		return true
	default:
		return false
	}
}

// AllFontFamilies returns the allowed font families in menu order.
func AllFontFamilies() []FontFamily {
	return []FontFamily{FontInter, FontPlayfairDisplay, FontMontserrat, FontLora, FontRoboto, FontOpenSans}
}

// TextAlign is an optional horizontal alignment. Empty means inherit.
type TextAlign string

// Text alignments.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// IsValid returns true for the empty value and the known alignments.
func (a TextAlign) IsValid() bool {
	switch a {
	case "", AlignLeft, AlignCenter, AlignRight:
		return true
	default:
		return false
	}
}

// StyledText is a text string with its typography.
type StyledText struct {
	Text       string     `json:"text"`
	FontSize   FontSize   `json:"fontSize"`
	Color      string     `json:"color"`
	FontFamily FontFamily `json:"fontFamily"`

	// Align and Weight are optional; zero values inherit from the page.
	Align  TextAlign `json:"align"`
	Weight int       `json:"weight"`
}

// Position is a placement in percent of the containing box, both axes 0-100.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp returns the position with both axes limited to 0-100.
func (p Position) Clamp() Position {
	return Position{X: clampPercent(p.X), Y: clampPercent(p.Y)}
}

// UnmarshalJSON clamps decoded positions so stored values stay in range.
func (p *Position) UnmarshalJSON(data []byte) error {
	type raw Position
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = Position(r).Clamp()
	return nil
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Minimum size of a resizable text box, in pixels.
const (
	MinTextWidth  = 50
	MinTextHeight = 30
)

// Size is a pixel box size for resizable text.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Floor returns the size raised to the minimum text box size.
func (s Size) Floor() Size {
	if s.Width < MinTextWidth {
		s.Width = MinTextWidth
	}
	if s.Height < MinTextHeight {
		s.Height = MinTextHeight
	}
	return s
}

// DraggableText is free-floating text placed by the user inside a section.
type DraggableText struct {
	ID string `json:"id"`
	StyledText
	Position Position `json:"position"`

	// Size is nil for texts that size to their content.
	Size *Size `json:"size"`
}
