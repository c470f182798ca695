// Package version carries build metadata injected with -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/tengben1989/biclustlib/internal/version.Version=v0.3.0"
var (
	Version = "dev"
	Commit  = "none"
)

// Info is the machine-readable build description.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build description.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders a single human-readable line.
func (i Info) String() string {
	return fmt.Sprintf("biclust %s (commit %s, %s, %s)", i.Version, i.Commit, i.GoVersion, i.Platform)
}

// JSON renders the indented JSON form.
func (i Info) JSON() ([]byte, error) { return json.MarshalIndent(i, "", "  ") }
