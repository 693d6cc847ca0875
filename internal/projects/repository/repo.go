package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, start_date, end_date, description, technologies, image, created_at, updated_at`

// Create inserts a new project. The id is caller-assigned; a duplicate
// id fails with domain.ErrConflict.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO projects (id, name, start_date, end_date, description, technologies, image)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + projectColumns + `;
`
	row := r.db.QueryRowContext(ctx, q,
		p.ID, p.Name, p.StartDate, p.EndDate, p.Description,
		pq.Array(p.Technologies), p.Image)

	stored, err := scanProject(row)
	if err != nil {
		// unique violation on the primary key
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, &domain.StorageError{Op: "create project", Err: err}
	}
	return stored, nil
}

// GetByID returns the project or (nil, nil) when no row matches.
// Absence is not an error here; callers decide what it means.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "get project", Err: err}
	}
	return p, nil
}

// List returns all projects, newest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &domain.StorageError{Op: "list projects", Err: err}
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, &domain.StorageError{Op: "list projects", Err: err}
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list projects", Err: err}
	}
	return out, nil
}

// Update replaces every mutable column of the row matching id.
// updated_at is refreshed by the update_projects_updated_at trigger, not
// supplied by callers.
func (r *ProjectRepository) Update(ctx context.Context, id string, f domain.Fields) (*domain.Project, error) {
	const q = `
UPDATE projects
SET name = $2, start_date = $3, end_date = $4, description = $5, technologies = $6, image = $7
WHERE id = $1
RETURNING ` + projectColumns + `;
`
	row := r.db.QueryRowContext(ctx, q,
		id, f.Name, f.StartDate, f.EndDate, f.Description,
		pq.Array(f.Technologies), f.Image)

	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Op: "update project", Err: err}
	}
	return p, nil
}

// Delete removes the row and returns the deleted record so the caller
// can clean up the image file. Of two concurrent deletes exactly one
// gets the row back; the other sees domain.ErrNotFound.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (*domain.Project, error) {
	const q = `DELETE FROM projects WHERE id = $1 RETURNING ` + projectColumns + `;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, &domain.StorageError{Op: "delete project", Err: err}
	}
	return p, nil
}

// ImageRefs returns the image path of every project. Used by the
// orphaned-upload sweep.
func (r *ProjectRepository) ImageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT image FROM projects;`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list image refs", Err: err}
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref sql.NullString
		if err := rows.Scan(&ref); err != nil {
			return nil, &domain.StorageError{Op: "list image refs", Err: err}
		}
		if ref.Valid {
			refs = append(refs, ref.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list image refs", Err: err}
	}
	return refs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var (
		p     domain.Project
		techs pq.StringArray
		desc  sql.NullString
		image sql.NullString
	)
	err := s.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &desc,
		&techs, &image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Description = desc.String
	p.Image = image.String
	p.Technologies = []string(techs)
	return &p, nil
}
