// Package version reports the wallet-setup build version.
//
// Release builds stamp Version and Commit with ldflags:
//
//	go build -ldflags "-X github.com/muurk/wallet-setup/internal/version.Version=v0.3.0 \
//	    -X github.com/muurk/wallet-setup/internal/version.Commit=1a2b3c4" ./cmd/wallet-setup
//
// Other builds fill them from the VCS stamp in the binary's build info.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the release version, e.g. v0.3.0
	Version = ""
	// Commit is the short git revision the binary was built from
	Commit = ""
)

const shortCommitLen = 7

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills in whatever ldflags left empty. Development builds get a
// "dev-" version dated by the commit time, or by now when unknown.
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	settings := map[string]string{}
	if info != nil {
		for _, s := range info.Settings {
			settings[s.Key] = s.Value
		}
	}

	if commit == "" {
		commit = "unknown"
		if rev := settings["vcs.revision"]; rev != "" {
			if len(rev) > shortCommitLen {
				rev = rev[:shortCommitLen]
			}
			commit = rev
			if settings["vcs.modified"] == "true" {
				commit += "-dirty"
			}
		}
	}

	if version == "" {
		stamp := now.Format("20060102-150405")
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			stamp = t.Format("20060102")
		}
		version = "dev-" + stamp
	}

	return version, commit
}

// Full returns the version with its commit
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent identifies this tool in requests to the wallet backend
func UserAgent() string {
	return "wallet-setup/" + Version
}
