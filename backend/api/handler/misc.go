package handler

import (
	"media-uploader/backend/common"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"status":     "ok",
		"version":    common.Version,
		"start_time": common.StartTime,
	})
}
