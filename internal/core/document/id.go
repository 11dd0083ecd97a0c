package document

import "github.com/google/uuid"

// IDFunc generates identifiers for new sections and items.
type IDFunc func() string

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.New().String()
}

func (f IDFunc) orDefault() IDFunc {
	if f == nil {
		return NewID
	}
	return f
}
