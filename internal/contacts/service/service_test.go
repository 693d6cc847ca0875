package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porto-anggi/porto-backend/internal/contacts/domain"
)

type fakeStore struct {
	created []domain.ContactMessage
}

func (f *fakeStore) Create(_ context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	stored := *m
	stored.ID = int64(len(f.created) + 1)
	stored.SubmittedAt = time.Now()
	f.created = append(f.created, stored)
	return &stored, nil
}

func (f *fakeStore) List(_ context.Context) ([]domain.ContactMessage, error) {
	out := make([]domain.ContactMessage, len(f.created))
	copy(out, f.created)
	return out, nil
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:    "Anggi",
		Email:   "anggi@example.com",
		Phone:   "+62 812 0000 0000",
		Subject: "Hello",
		Message: "I would like to work with you.",
	}
}

func TestContactService_Submit(t *testing.T) {
	t.Run("stores a valid message", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewContactService(store)

		m, err := svc.Submit(context.Background(), validInput())
		require.NoError(t, err)

		assert.NotZero(t, m.ID)
		assert.False(t, m.SubmittedAt.IsZero())
		assert.Equal(t, "anggi@example.com", m.Email)
		assert.Len(t, store.created, 1)
	})

	t.Run("malformed email fails validation and writes no row", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewContactService(store)

		in := validInput()
		in.Email = "not-an-email"
		_, err := svc.Submit(context.Background(), in)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be a valid email address", verr.Fields["email"])
		assert.Empty(t, store.created)
	})

	t.Run("missing required fields are all reported", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewContactService(store)

		_, err := svc.Submit(context.Background(), SubmitInput{})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "message")
		assert.Empty(t, store.created)
	})

	t.Run("whitespace-only fields are rejected", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewContactService(store)

		in := validInput()
		in.Message = "   "
		_, err := svc.Submit(context.Background(), in)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "message")
	})

	t.Run("phone and subject are optional", func(t *testing.T) {
		store := &fakeStore{}
		svc := NewContactService(store)

		in := validInput()
		in.Phone = ""
		in.Subject = ""
		_, err := svc.Submit(context.Background(), in)
		assert.NoError(t, err)
	})
}
