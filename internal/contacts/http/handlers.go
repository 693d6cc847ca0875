package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/porto-anggi/porto-backend/internal/contacts/domain"
	"github.com/porto-anggi/porto-backend/internal/contacts/service"
)

// Handler bundles the dependencies for contact HTTP endpoints.
type Handler struct {
	svc *service.ContactService
	log *logrus.Logger
}

func New(svc *service.ContactService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type submitReq struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	m, err := h.svc.Submit(c.Request.Context(), service.SubmitInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"message": "Thank you for your message. We will get back to you soon!",
		"contact": m,
	})
}

func (h *Handler) list(c *gin.Context) {
	ms, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "contacts": ms})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid input", "fields": verr.Fields})
		return
	}

	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("contact request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}
