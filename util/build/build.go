// Package build carries version information stamped in at link time:
//
//	go build -ldflags "-X github.com/stripe/emitter/util/build.VERSION=v1.2.3"
package build

import (
	"fmt"
	"net/http"
)

const defaultValue = "dirty"

var (
	BUILD_DATE = defaultValue
	VERSION    = defaultValue
)

// String describes the build for -version output and logs.
func String() string {
	return fmt.Sprintf("%s (built %s)", VERSION, BUILD_DATE)
}

func HandleBuildDate(writer http.ResponseWriter, _ *http.Request) {
	writer.Write([]byte(BUILD_DATE))
}

func HandleVersion(writer http.ResponseWriter, _ *http.Request) {
	writer.Write([]byte(VERSION))
}
