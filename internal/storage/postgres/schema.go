package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Bootstrap creates the portfolio schema if it does not exist yet. It is
// idempotent and safe to run on every process start.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			description TEXT,
			technologies TEXT[],
			image VARCHAR(500),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			subject VARCHAR(500),
			message TEXT NOT NULL,
			submitted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE OR REPLACE FUNCTION update_updated_at_column()
		RETURNS TRIGGER AS $$
		BEGIN
			NEW.updated_at = CURRENT_TIMESTAMP;
			RETURN NEW;
		END;
		$$ language 'plpgsql'`,
		`DROP TRIGGER IF EXISTS update_projects_updated_at ON projects`,
		`CREATE TRIGGER update_projects_updated_at
			BEFORE UPDATE ON projects
			FOR EACH ROW
			EXECUTE FUNCTION update_updated_at_column()`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap: %w", err)
		}
	}

	return nil
}

// Seed inserts a couple of sample projects when the projects table is
// empty. Used for local development only.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	samples := []struct {
		name         string
		startDate    string
		endDate      string
		description  string
		technologies []string
		image        string
	}{
		{
			name:         "Portfolio Website",
			startDate:    "2024-01-01",
			endDate:      "2024-01-31",
			description:  "A responsive portfolio website backed by PostgreSQL",
			technologies: []string{"Node.js", "TypeScript"},
			image:        "/img/demo-image-1.jpg",
		},
		{
			name:         "E-commerce Platform",
			startDate:    "2024-02-01",
			endDate:      "2024-04-30",
			description:  "Full-stack e-commerce platform with payment integration",
			technologies: []string{"Node.js", "React.js"},
			image:        "/img/demo-image-2.jpg",
		},
	}

	const q = `INSERT INTO projects (id, name, start_date, end_date, description, technologies, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, s := range samples {
		_, err := db.ExecContext(ctx, q,
			uuid.NewString(), s.name, s.startDate, s.endDate,
			s.description, pq.Array(s.technologies), s.image)
		if err != nil {
			return fmt.Errorf("seed: insert project: %w", err)
		}
	}

	return nil
}
