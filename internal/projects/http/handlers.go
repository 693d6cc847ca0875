package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/porto-anggi/porto-backend/internal/projects/domain"
	"github.com/porto-anggi/porto-backend/internal/projects/service"
	"github.com/porto-anggi/porto-backend/internal/uploads"
)

const maxImageSize = 5 << 20 // 5MB, same cap the admin form advertises

func (h *Handler) create(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": toResponse(p)})
}

func (h *Handler) list(c *gin.Context) {
	ps, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": toResponseList(ps)})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toResponse(p)})
}

func (h *Handler) update(c *gin.Context) {
	in, ok := h.bindInput(c)
	if !ok {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toResponse(p)})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "project deleted"})
}

// bindInput parses the multipart project form: text fields, technology
// checkboxes and the optional image file. The file is stored before the
// service runs; on validation failure the stored file may be orphaned
// until the sweep collects it.
func (h *Handler) bindInput(c *gin.Context) (service.Input, bool) {
	in := service.Input{
		Name:        c.PostForm("projectName"),
		StartDate:   c.PostForm("startDate"),
		EndDate:     c.PostForm("endDate"),
		Description: c.PostForm("description"),
		Technologies: map[string]bool{
			service.TechNodeJS:     checked(c.PostForm("nodeJs")),
			service.TechNextJS:     checked(c.PostForm("nextJs")),
			service.TechReactJS:    checked(c.PostForm("reactJs")),
			service.TechTypeScript: checked(c.PostForm("typescript")),
		},
	}

	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid image upload"})
		return in, false
	}

	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "image exceeds the 5MB limit"})
		return in, false
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "only image files are allowed"})
		return in, false
	}

	src, err := file.Open()
	if err != nil {
		h.log.WithError(err).Error("failed to open uploaded image")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to store image"})
		return in, false
	}
	defer src.Close()

	ref, err := h.store.Save(c.Request.Context(), uploads.NewFilename(file.Filename), contentType, src)
	if err != nil {
		h.log.WithError(err).Error("failed to store uploaded image")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to store image"})
		return in, false
	}
	in.ImageRef = ref

	return in, true
}

// checked accepts both the raw HTML checkbox value and an explicit bool.
func checked(v string) bool {
	return v == "on" || v == "true" || v == "1"
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid input", "fields": verr.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "project id already exists"})
	default:
		h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("project request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
	}
}
