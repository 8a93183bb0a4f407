package cut

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the cut endpoints under the given group. All
// routes require the auth middleware on the group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	cuts := r.Group("/cuts")
	{
		cuts.POST("", h.Create)
		cuts.GET("", h.List)
		cuts.GET("/:id", h.GetByID)
		cuts.PUT("/:id", h.Update)
		cuts.DELETE("/:id", h.Remove)
	}
}
