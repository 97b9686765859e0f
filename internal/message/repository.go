package message

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrMessageNotFound = errors.New("message not found")

type Repository interface {
	Create(ctx context.Context, msg *Message) (*Message, error)
	ListAll(ctx context.Context) ([]Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
