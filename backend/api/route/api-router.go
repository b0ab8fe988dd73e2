package route

import (
	"media-uploader/backend/api/handler"
	"media-uploader/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func setApiRouter(router *gin.Engine) {
	// bulk endpoints accept session or bearer-token auth
	router.POST("/bulk_toggle_visibility", middleware.APIAuth(), handler.BulkToggleVisibility)
	router.POST("/bulk_delete", middleware.APIAuth(), handler.BulkDelete)

	apiRouter := router.Group("/api")
	{
		apiRouter.GET("/status", handler.GetStatus)
		apiRouter.GET("/token", middleware.APIAuth(), handler.GenerateToken)
	}
}
