package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/porto-anggi/porto-backend/internal/contacts/domain"
)

// ContactStore is the persistence surface the service needs.
// Implemented by repository.ContactRepository.
type ContactStore interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

// ContactService validates and persists inbound contact messages.
type ContactService struct {
	repo     ContactStore
	validate *validator.Validate
}

// NewContactService creates a new contact service.
func NewContactService(repo ContactStore) *ContactService {
	return &ContactService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SubmitInput carries a contact form submission. Phone and subject are
// optional.
type SubmitInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,max=50"`
	Subject string `validate:"omitempty,max=500"`
	Message string `validate:"required"`
}

// Submit validates the input and persists it. The stored record,
// including the server-assigned id and timestamp, is returned.
func (s *ContactService) Submit(ctx context.Context, in SubmitInput) (*domain.ContactMessage, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	return s.repo.Create(ctx, &domain.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	})
}

// List returns every stored message, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "required"
		case "email":
			fields[name] = "must be a valid email address"
		case "max":
			fields[name] = "too long"
		default:
			fields[name] = "invalid"
		}
	}
	return &domain.ValidationError{Fields: fields}
}
