package access

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authenticate gin.HandlerFunc) {
	pages := r.Group("/access/pages")
	pages.Use(authenticate)
	{
		pages.GET("", handler.Pages)
		pages.GET("/:page", handler.CheckPage)
	}
}
