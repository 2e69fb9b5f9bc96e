// In file: cmd/moviebot/version.go
package main

import (
	"fmt"
	"runtime"

	componentversion "github.com/dileep-u-k/moviebot/internal/version"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type BuildInfo struct {
	Version, BuildDate, GitCommit, GoVersion, Platform string
	ToolsVersion, ProtocolVersion                      string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:         version,
		BuildDate:       buildDate,
		GitCommit:       gitCommit,
		GoVersion:       runtime.Version(),
		Platform:        fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		ToolsVersion:    componentversion.ComponentVersions.Tools,
		ProtocolVersion: componentversion.ComponentVersions.Protocol,
	}
}
