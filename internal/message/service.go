package message

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrValidation = errors.New("please fill the full form")

type Service struct {
	repo     Repository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		log:      log.With().Str("component", "message").Logger(),
	}
}

// Send validates a contact form and stores it in the inbox.
func (s *Service) Send(ctx context.Context, req SendRequest) (*Message, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	msg := &Message{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Body:      req.Body,
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.log.Info().Str("message_id", created.ID.String()).Msg("contact message received")
	return created, nil
}

// ListAll returns the whole inbox, newest first.
func (s *Service) ListAll(ctx context.Context) ([]Message, error) {
	msgs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a message permanently.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("message_id", id.String()).Msg("message deleted")
	return nil
}
