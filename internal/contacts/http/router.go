package http

import "github.com/gin-gonic/gin"

// Register attaches the public contact submission route.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.submit)
}

// RegisterAdmin attaches the administrative contact listing. The caller
// is expected to guard the group with the API-key middleware.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/contacts", h.list)
}
