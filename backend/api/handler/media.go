package handler

import (
	"io"
	"net/http"
	"strconv"

	"media-uploader/backend/api/middleware"
	"media-uploader/backend/common"
	apperrors "media-uploader/backend/common/errors"
	"media-uploader/backend/model"
	"media-uploader/backend/service"

	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/upload")
}

func UploadPage(c *gin.Context) {
	c.HTML(http.StatusOK, "upload.html", gin.H{"Flashes": takeFlashes(c)})
}

// Upload handles the multipart upload form. The file is read fully up front
// so the byte length is captured before the remote upload consumes it.
func Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		setFlash(c, "No file selected.")
		c.Redirect(http.StatusFound, "/upload")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		setFlash(c, "Cannot open uploaded file.")
		c.Redirect(http.StatusFound, "/upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		setFlash(c, "Cannot read uploaded file.")
		c.Redirect(http.StatusFound, "/upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	uploadedBy := middleware.SessionUsername(c)
	if uploadedBy == "" {
		uploadedBy = c.PostForm("uploader_name")
	}
	if uploadedBy == "" {
		uploadedBy = common.AnonymousUploader
	}

	_, err = service.UploadMedia(c.Request.Context(), service.UploadRequest{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		UploadedBy:  uploadedBy,
		Description: c.PostForm("description"),
		Data:        data,
	})
	if err != nil {
		setFlash(c, "Upload failed: "+err.Error())
		c.Redirect(http.StatusFound, "/upload")
		return
	}

	setFlash(c, "Upload successful!")
	c.Redirect(http.StatusFound, "/gallery")
}

func Gallery(c *gin.Context) {
	medias, err := model.GetVisibleMedia()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load gallery")
		return
	}
	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"Medias":  medias,
		"Flashes": takeFlashes(c),
	})
}

func Manage(c *gin.Context) {
	medias, err := model.GetAllMedia()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load media list")
		return
	}
	c.HTML(http.StatusOK, "manage.html", gin.H{
		"Medias":   medias,
		"Flashes":  takeFlashes(c),
		"Username": c.GetString("username"),
	})
}

func DeleteMedia(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/manage")
		return
	}

	err = service.DeleteMedia(c.Request.Context(), id)
	switch {
	case err == nil:
		setFlash(c, "Deleted successfully")
	case apperrors.IsNotFound(err):
		// missing rows are a silent no-op
	default:
		setFlash(c, "Delete failed: "+err.Error())
	}
	c.Redirect(http.StatusFound, "/manage")
}

func ToggleVisibility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/manage")
		return
	}

	if err := model.ToggleMediaVisibility(id); err != nil && !apperrors.IsNotFound(err) {
		common.SysError("toggle visibility of media " + c.Param("id") + " failed: " + err.Error())
	}
	c.Redirect(http.StatusFound, "/manage")
}
