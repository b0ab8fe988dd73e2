package common

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

const logTimeFormat = "2006/01/02 - 15:04:05"

// SetupGinLog tees gin's writers into a log file when --log-dir is set.
func SetupGinLog() {
	if *LogDir == "" {
		return
	}
	commonLogPath := filepath.Join(*LogDir, "common.log")
	errorLogPath := filepath.Join(*LogDir, "error.log")
	commonFd, err := os.OpenFile(commonLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("failed to open log file")
	}
	errorFd, err := os.OpenFile(errorLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal("failed to open log file")
	}
	gin.DefaultWriter = io.MultiWriter(os.Stdout, commonFd)
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, errorFd)
}

func SysLog(s string) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultWriter, "[SYS] %v | %s \n", t.Format(logTimeFormat), s)
}

func SysError(s string) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultErrorWriter, "[ERR] %v | %s \n", t.Format(logTimeFormat), s)
}

func FatalLog(v ...any) {
	t := time.Now()
	_, _ = fmt.Fprintf(gin.DefaultErrorWriter, "[FATAL] %v | %v \n", t.Format(logTimeFormat), v)
	os.Exit(1)
}
