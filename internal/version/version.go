// Package version reports build information embedded by the Go toolchain.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version can be overridden at link time with
// -ldflags "-X github.com/tesh254/ukify/internal/version.Version=v1.2.3".
var Version = ""

// BuildInfo holds build details.
type BuildInfo struct {
	Version    string `json:"version"`
	GitCommit  string `json:"git_commit"`
	BuildDate  string `json:"build_date"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
	Compiler   string `json:"compiler"`
	IsModified bool   `json:"is_modified"`
	ModulePath string `json:"module_path,omitempty"`
	ModuleSum  string `json:"module_sum,omitempty"`
}

// GetBuildInfo collects build details from the binary.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   "v0.0.0-dev",
		GitCommit: "unknown",
		BuildDate: "unknown",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Compiler:  runtime.Compiler,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.ModulePath = bi.Main.Path
		info.ModuleSum = bi.Main.Sum
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.GitCommit = s.Value
			case "vcs.time":
				info.BuildDate = s.Value
			case "vcs.modified":
				info.IsModified = s.Value == "true"
			}
		}
	}

	if Version != "" {
		info.Version = Version
	}
	return info
}

// GetVersion returns the version string, e.g. "v1.2.3".
func GetVersion() string {
	return GetBuildInfo().Version
}

// GetShortVersion returns the version without the leading "v".
func GetShortVersion() string {
	return strings.TrimPrefix(GetVersion(), "v")
}

// IsDevelopment reports whether this is an untagged build.
func IsDevelopment() bool {
	return strings.Contains(GetVersion(), "dev")
}

// GetDetailedVersion returns a one-line description of the build.
func GetDetailedVersion() string {
	info := GetBuildInfo()
	commit := info.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("ukify %s (commit %s, %s, %s)", info.Version, commit, info.GoVersion, info.Platform)
}

// GetJSONVersion returns the build details as indented JSON.
func GetJSONVersion() string {
	b, err := json.MarshalIndent(GetBuildInfo(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
