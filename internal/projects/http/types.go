package http

import (
	"github.com/sirupsen/logrus"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
	"github.com/porto-anggi/porto-backend/internal/projects/service"
	"github.com/porto-anggi/porto-backend/internal/uploads"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc   *service.ProjectService
	store uploads.Store
	log   *logrus.Logger
}

func New(svc *service.ProjectService, store uploads.Store, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, store: store, log: log}
}

// projectResponse augments the stored record with the derived duration
// in months.
type projectResponse struct {
	domain.Project
	Duration int `json:"duration"`
}

func toResponse(p *domain.Project) projectResponse {
	return projectResponse{
		Project:  *p,
		Duration: service.ComputeDuration(p.StartDate, p.EndDate),
	}
}

func toResponseList(ps []domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toResponse(&ps[i]))
	}
	return out
}
