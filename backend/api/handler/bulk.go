package handler

import (
	"net/http"
	"strconv"

	"media-uploader/backend/model"
	"media-uploader/backend/service"

	"github.com/gin-gonic/gin"
)

type bulkRequest struct {
	MediaIDs []int64 `json:"media_ids"`
}

func BulkToggleVisibility(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body: " + err.Error()})
		return
	}

	if err := model.BulkToggleVisibility(req.MediaIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func BulkDelete(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid request body: " + err.Error()})
		return
	}

	failed := service.BulkDeleteMedia(c.Request.Context(), req.MediaIDs)
	if len(failed) > 0 {
		c.JSON(http.StatusOK, gin.H{"status": "partial", "failed_ids": failed})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DownloadSelected streams the selected media items as one ZIP attachment.
func DownloadSelected(c *gin.Context) {
	idStrings := c.PostFormArray("media_ids")
	if len(idStrings) == 0 {
		setFlash(c, "No files selected")
		c.Redirect(http.StatusFound, "/manage")
		return
	}

	var ids []int64
	for _, s := range idStrings {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	data, err := service.BuildSelectedArchive(c.Request.Context(), ids)
	if err != nil {
		setFlash(c, "Download failed: "+err.Error())
		c.Redirect(http.StatusFound, "/manage")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="selected_media.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}
