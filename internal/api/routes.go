package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/cards/render", h.renderCard)
		api.GET("/sigils/:name", h.sigil)
		api.GET("/traits/:name", h.trait)
		api.GET("/cost", h.cost)
		api.POST("/sheet", h.sheet)
	}
}
