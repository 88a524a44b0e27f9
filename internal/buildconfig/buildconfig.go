// Package buildconfig exposes values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/Harshitk-cp/aurora/internal/buildconfig.version=v1.2.0"
package buildconfig

import "fmt"

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = ""
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// VersionInfo returns full version information
func VersionInfo() map[string]string {
	info := map[string]string{
		"version": version,
		"commit":  commit,
	}
	if buildTime != "" {
		info["build_time"] = buildTime
	}
	return info
}

// String is the one-line form logged at startup.
func String() string {
	return fmt.Sprintf("aurora %s (%s)", version, commit)
}
