package common

import (
	"flag"
	"fmt"
	"time"
)

var Version = "v0.1.0"
var SystemName = "Media Uploader"
var StartTime = time.Now().Unix()

var Port = flag.Int("port", 3000, "the listening port")
var PrintVersion = flag.Bool("version", false, "print version and exit")
var PrintHelpFlag = flag.Bool("help", false, "print help and exit")
var LogDir = flag.String("log-dir", "", "specify the log directory")
var EnableGzip = flag.Bool("enable-gzip", true, "enable gzip compression for responses")

// SessionSecret and JWTSecret get persisted defaults from the config file on
// first run; environment variables override both.
var SessionSecret = "random_string"
var JWTSecret = "random_string"

var SQLitePath = "data/media-uploader.db"

// Remote object store settings. Uploads are disabled until S3Bucket is set.
var S3Region = "us-east-1"
var S3Bucket = ""
var S3Endpoint = ""
var S3PublicRead = true

const AnonymousUploader = "Anonymous"

func PrintHelp() {
	fmt.Println(SystemName + " " + Version)
	fmt.Println("Usage: media-uploader [--port <port>] [--log-dir <log directory>]")
	flag.PrintDefaults()
}
