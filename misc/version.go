// Package misc keeps build information, values are set by the linker.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetAppName returns program name, derived from executable when not set at
// build time.
func GetAppName() string {
	if appName != "" {
		return appName
	}
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func GetVersion() string { return version }

func GetGitHash() string { return gitHash }
