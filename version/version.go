// Package version tells which build of notecomp is running.
package version

import "runtime/debug"

// Version can be set at build time, e.g.
// go build -ldflags "-X github.com/vsariola/notecomp/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision the binary was built from, suffixed with
// "-dirty" for modified trees, or empty when the build has no VCS info.
var Hash = revision()

// VersionOrHash is Version if it was set, Hash otherwise.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var rev string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}
