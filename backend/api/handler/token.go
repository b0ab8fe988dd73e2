package handler

import (
	"net/http"

	"media-uploader/backend/common"
	"media-uploader/backend/model"
	"media-uploader/backend/service"

	"github.com/gin-gonic/gin"
)

// GenerateToken issues a JWT the caller can use as Bearer auth on the JSON
// endpoints. Requires an authenticated session.
func GenerateToken(c *gin.Context) {
	user := &model.User{
		Id:       c.GetInt64("id"),
		Username: c.GetString("username"),
	}
	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	common.RespSuccess(c, token)
}
