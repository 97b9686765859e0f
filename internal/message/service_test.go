package message

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	items map[uuid.UUID]*Message
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Message)}
}

func (m *mockRepo) Create(_ context.Context, msg *Message) (*Message, error) {
	cp := *msg
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	m.items[cp.ID] = &cp
	return &cp, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]Message, error) {
	var result []Message
	for _, msg := range m.items {
		result = append(result, *msg)
	}
	return result, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrMessageNotFound
	}
	delete(m.items, id)
	return nil
}

func validSend() SendRequest {
	return SendRequest{
		FirstName: "Nadia",
		LastName:  "Farouk",
		Email:     "nadia.farouk@example.com",
		Phone:     "01898765432",
		Body:      "I would like to know the visiting hours.",
	}
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid message", func(t *testing.T) {
		repo := newMockRepo()
		svc := NewService(repo, zerolog.Nop())

		msg, err := svc.Send(ctx, validSend())
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, msg.ID)
		assert.Len(t, repo.items, 1)
	})

	t.Run("rejects incomplete forms without a store write", func(t *testing.T) {
		mutations := []func(*SendRequest){
			func(r *SendRequest) { r.FirstName = "" },
			func(r *SendRequest) { r.LastName = "" },
			func(r *SendRequest) { r.Email = "bad-email" },
			func(r *SendRequest) { r.Phone = "123" },
			func(r *SendRequest) { r.Body = "too short" },
		}

		for i, mutate := range mutations {
			repo := newMockRepo()
			svc := NewService(repo, zerolog.Nop())

			req := validSend()
			mutate(&req)

			_, err := svc.Send(ctx, req)
			assert.ErrorIs(t, err, ErrValidation, "case %d", i)
			assert.Empty(t, repo.items, "case %d", i)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	repo := newMockRepo()
	svc := NewService(repo, zerolog.Nop())

	err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrMessageNotFound)

	msg, err := svc.Send(ctx, validSend())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, msg.ID))

	left, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, left)
}
