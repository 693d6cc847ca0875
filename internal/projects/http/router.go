package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. Update is
// reachable over both PUT and POST; the admin form posts the edit
// dialog.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.POST("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
