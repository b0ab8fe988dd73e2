package route

import (
	"html/template"
	"io/fs"

	"media-uploader/backend/api/handler"
	"media-uploader/backend/api/middleware"
	"media-uploader/backend/common"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

func setWebRouter(router *gin.Engine, webFS fs.FS) {
	tmpl := template.Must(template.ParseFS(webFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)
	router.Use(static.Serve("/static", common.EmbedFolder(webFS, "static")))

	router.GET("/", handler.Home)

	router.GET("/setup", handler.SetupPage)
	router.POST("/setup", handler.Setup)
	router.GET("/register", handler.RegisterPage)
	router.POST("/register", handler.Register)
	router.GET("/login", handler.LoginPage)
	router.POST("/login", handler.Login)
	router.GET("/logout", middleware.WebAuth(), handler.Logout)

	router.GET("/upload", handler.UploadPage)
	router.POST("/upload", handler.Upload)
	router.GET("/gallery", handler.Gallery)

	authed := router.Group("/", middleware.WebAuth())
	{
		authed.GET("/manage", handler.Manage)
		authed.GET("/delete/:id", handler.DeleteMedia)
		authed.GET("/toggle_visibility/:id", handler.ToggleVisibility)
		authed.POST("/download_selected", handler.DownloadSelected)
	}
}
