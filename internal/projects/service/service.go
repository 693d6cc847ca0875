package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
)

// ProjectStore is the persistence surface the service needs. Implemented
// by repository.ProjectRepository.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, id string, f domain.Fields) (*domain.Project, error)
	Delete(ctx context.Context, id string) (*domain.Project, error)
}

// FileRemover removes a stored upload by its reference path.
type FileRemover interface {
	Remove(ctx context.Context, ref string) error
}

// Cache is an optional read-through cache for project reads. A nil
// Cache disables caching.
type Cache interface {
	GetList(ctx context.Context) ([]domain.Project, bool)
	SetList(ctx context.Context, ps []domain.Project)
	Get(ctx context.Context, id string) (*domain.Project, bool)
	Set(ctx context.Context, p *domain.Project)
	Invalidate(ctx context.Context, id string)
}

// ProjectService handles project business logic: input validation,
// derived fields and image lifecycle around the storage layer.
type ProjectService struct {
	repo    ProjectStore
	files   FileRemover
	chooser ImageChooser
	cache   Cache
	log     *logrus.Logger
}

// NewProjectService creates a new project service. cache may be nil.
func NewProjectService(repo ProjectStore, files FileRemover, chooser ImageChooser, cache Cache, log *logrus.Logger) *ProjectService {
	if chooser == nil {
		chooser = NewRandChooser()
	}
	if log == nil {
		log = logrus.New()
	}
	return &ProjectService{
		repo:    repo,
		files:   files,
		chooser: chooser,
		cache:   cache,
		log:     log,
	}
}

// Input carries a project create/update submission. Technologies is
// keyed by canonical tag name; ImageRef is the stored upload reference,
// empty when no file was attached.
type Input struct {
	Name         string
	StartDate    string
	EndDate      string
	Description  string
	Technologies map[string]bool
	ImageRef     string
}

const dateLayout = "2006-01-02"

type parsedDates struct {
	start time.Time
	end   time.Time
}

func validate(in Input) (parsedDates, *domain.ValidationError) {
	fields := map[string]string{}
	var d parsedDates

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "required"
	}

	if in.StartDate == "" {
		fields["start_date"] = "required"
	} else if t, err := time.Parse(dateLayout, in.StartDate); err != nil {
		fields["start_date"] = "must be a date in YYYY-MM-DD format"
	} else {
		d.start = t
	}

	if in.EndDate == "" {
		fields["end_date"] = "required"
	} else if t, err := time.Parse(dateLayout, in.EndDate); err != nil {
		fields["end_date"] = "must be a date in YYYY-MM-DD format"
	} else {
		d.end = t
	}

	if len(fields) > 0 {
		return d, &domain.ValidationError{Fields: fields}
	}
	return d, nil
}

// Create validates the input, assigns a fresh id, resolves image and
// technologies, and persists the project.
func (s *ProjectService) Create(ctx context.Context, in Input) (*domain.Project, error) {
	dates, verr := validate(in)
	if verr != nil {
		return nil, verr
	}

	p := &domain.Project{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		StartDate:    dates.start,
		EndDate:      dates.end,
		Description:  in.Description,
		Technologies: NormalizeTechnologies(in.Technologies),
		Image:        s.resolveImage(in.ImageRef),
	}

	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, stored.ID)
	return stored, nil
}

// Get returns a single project, domain.ErrNotFound when absent.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(ctx, id); ok {
			return p, nil
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if s.cache != nil {
		s.cache.Set(ctx, p)
	}
	return p, nil
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.cache != nil {
		if ps, ok := s.cache.GetList(ctx); ok {
			return ps, nil
		}
	}

	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetList(ctx, ps)
	}
	return ps, nil
}

// Update replaces the mutable fields of an existing project. When a new
// image is attached the previous uploaded file is removed, unless it is
// a shared demo image. File removal failures are logged, never
// propagated: the database row is authoritative.
func (s *ProjectService) Update(ctx context.Context, id string, in Input) (*domain.Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	dates, verr := validate(in)
	if verr != nil {
		return nil, verr
	}

	image := existing.Image
	if in.ImageRef != "" {
		s.removeUploadedImage(ctx, existing.Image)
		image = in.ImageRef
	}

	updated, err := s.repo.Update(ctx, id, domain.Fields{
		Name:         strings.TrimSpace(in.Name),
		StartDate:    dates.start,
		EndDate:      dates.end,
		Description:  in.Description,
		Technologies: NormalizeTechnologies(in.Technologies),
		Image:        image,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return updated, nil
}

// Delete removes the project row, then the uploaded image file if the
// project had one.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.removeUploadedImage(ctx, deleted.Image)
	s.invalidate(ctx, id)
	return nil
}

func (s *ProjectService) resolveImage(ref string) string {
	if ref != "" {
		return ref
	}
	return s.chooser.Choose(DemoImages)
}

// removeUploadedImage deletes the backing file for an uploaded image
// ref. Demo images are shared assets and are never deleted.
func (s *ProjectService) removeUploadedImage(ctx context.Context, ref string) {
	if !IsUploadedImage(ref) || s.files == nil {
		return
	}
	if err := s.files.Remove(ctx, ref); err != nil {
		s.log.WithError(err).WithField("image", ref).Warn("failed to remove uploaded image file")
	}
}

func (s *ProjectService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}
