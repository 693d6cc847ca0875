package repository

import (
	"context"
	"database/sql"

	"github.com/porto-anggi/porto-backend/internal/contacts/domain"
)

// ContactRepository provides persistence operations for contact
// messages.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a message. id and submitted_at are storage-assigned.
func (r *ContactRepository) Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO contacts (name, email, phone, subject, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, phone, subject, message, submitted_at;
`
	stored, err := scanContact(r.db.QueryRowContext(ctx, q,
		m.Name, m.Email, m.Phone, m.Subject, m.Message))
	if err != nil {
		return nil, &domain.StorageError{Op: "create contact", Err: err}
	}
	return stored, nil
}

// List returns all messages, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	const q = `
SELECT id, name, email, phone, subject, message, submitted_at
FROM contacts
ORDER BY submitted_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.StorageError{Op: "list contacts", Err: err}
	}
	defer rows.Close()

	out := make([]domain.ContactMessage, 0, 16)
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list contacts", Err: err}
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list contacts", Err: err}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(s rowScanner) (*domain.ContactMessage, error) {
	var (
		m       domain.ContactMessage
		phone   sql.NullString
		subject sql.NullString
	)
	err := s.Scan(&m.ID, &m.Name, &m.Email, &phone, &subject, &m.Message, &m.SubmittedAt)
	if err != nil {
		return nil, err
	}
	m.Phone = phone.String
	m.Subject = subject.String
	return &m, nil
}
