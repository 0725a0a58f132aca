// Package version reports what binary is running. Release builds stamp the
// fields with
//
//	-ldflags "-X adscope/internal/core/version.version=v0.1.0 -X adscope/internal/core/version.commit=abcd -X adscope/internal/core/version.date=2025-10-01"
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served by /meta/version and sent as clickhouse client info
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info describes the running binary. Without ldflags the commit falls back to
// the vcs revision the go tool stamped, when there is one
func Info(service string) BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date, Go: runtime.Version()}
	if bi.Commit != "none" {
		return bi
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				bi.Commit = s.Value
			}
		}
	}
	return bi
}
