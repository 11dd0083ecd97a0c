package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ContactSubmission is one enquiry sent through a property's contact form.
// Submissions are append-only.
type ContactSubmission struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate checks the required fields of a submission.
func (s ContactSubmission) Validate() error {
	if strings.TrimSpace(s.PropertyID) == "" {
		return fmt.Errorf("%w: property id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(s.Email); err != nil {
		return fmt.Errorf("%w: email %q", ErrInvalidInput, s.Email)
	}
	if strings.TrimSpace(s.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	return nil
}
