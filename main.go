package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"media-uploader/backend/api/middleware"
	"media-uploader/backend/api/route"
	"media-uploader/backend/common"
	"media-uploader/backend/library/storage"
	"media-uploader/backend/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := common.LoadConfig(); err != nil {
		common.FatalLog(err)
	}
	// Initialize Redis
	err := common.InitRedisClient()
	if err != nil {
		common.FatalLog(err)
	}
	// Initialize SQL Database
	err = model.InitDB()
	if err != nil {
		common.FatalLog(err)
	}
	defer func() {
		err := model.CloseDB()
		if err != nil {
			common.FatalLog(err)
		}
	}()

	// Initialize the remote object store
	if common.S3Bucket == "" {
		common.SysLog("S3_BUCKET not set, uploads are disabled")
	} else {
		store, err := storage.NewS3Store(context.Background(),
			common.S3Region, common.S3Bucket, common.S3Endpoint, common.S3PublicRead)
		if err != nil {
			common.FatalLog(err)
		}
		storage.Configure(store)
	}

	// Initialize HTTP server
	server := gin.Default()
	server.Use(middleware.CORS())
	if *common.EnableGzip {
		server.Use(middleware.GzipDecodeMiddleware())
		server.Use(middleware.GzipEncodeMiddleware())
	}

	// Initialize session store
	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, _ := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions("session", store))
	}

	webRoot, err := fs.Sub(webFS, "web")
	if err != nil {
		common.FatalLog(err)
	}
	route.SetRouter(server, webRoot)

	port := strconv.Itoa(*common.Port)
	common.SysLog("Server listening on port: " + port)

	setupGracefulShutdown()

	err = server.Run(":" + port)
	if err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown registers signal handlers to ensure clean shutdown
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("Shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysError("error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
