package route

import (
	"io/fs"

	"github.com/gin-gonic/gin"
)

// SetRouter registers every route. webFS must contain the embedded
// templates/ and static/ directories.
func SetRouter(router *gin.Engine, webFS fs.FS) {
	setWebRouter(router, webFS)
	setApiRouter(router)
}
