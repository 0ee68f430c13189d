package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. intake
// handlers run in front of submission only.
func (h *Handler) Register(rg *gin.RouterGroup, intake ...gin.HandlerFunc) {
	projects := rg.Group("/projects")
	projects.POST("", append(intake, h.create)...)
	projects.GET("", h.list)
	projects.GET("/:id", h.get)
	projects.PUT("/:id/quote", h.sendQuote)
	projects.DELETE("/:id", h.delete)

	rg.GET("/metrics", h.metrics)
}
