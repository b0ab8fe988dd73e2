package common

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/static"
)

type embedFileSystem struct {
	http.FileSystem
}

func (e embedFileSystem) Exists(prefix string, path string) bool {
	_, err := e.Open(path)
	return err == nil
}

// EmbedFolder exposes a sub-directory of an fs.FS as a static file system.
func EmbedFolder(fsys fs.FS, targetPath string) static.ServeFileSystem {
	sub, err := fs.Sub(fsys, targetPath)
	if err != nil {
		panic(err)
	}
	return embedFileSystem{http.FS(sub)}
}
