package message

import (
	"time"

	"github.com/google/uuid"
)

// Message is one entry of the contact inbox.
type Message struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendRequest is the public contact form. Every field is mandatory.
type SendRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,len=11"`
	Body      string `json:"message" validate:"required,min=10"`
}
