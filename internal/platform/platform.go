// Package platform resolves the current OS tag and the object/executable
// suffixes that follow from it (spec.md §6's platform suffix table).
package platform

import (
	"runtime"

	"maek/internal/core/domain"
)

// Suffixes holds the default object and executable filename suffixes for
// one platform tag.
type Suffixes struct {
	Obj string
	Exe string
}

var table = map[string]Suffixes{
	"linux":   {Obj: ".o", Exe: ""},
	"macos":   {Obj: ".o", Exe: ""},
	"windows": {Obj: ".obj", Exe: ".exe"},
}

// Current returns the maek OS tag for the running process: "windows",
// "macos", or "linux". Any other runtime.GOOS is unsupported.
func Current() (string, error) {
	switch runtime.GOOS {
	case "windows":
		return "windows", nil
	case "darwin":
		return "macos", nil
	case "linux":
		return "linux", nil
	default:
		return "", domain.UnknownPlatformError(runtime.GOOS)
	}
}

// SuffixesFor returns the default object/exe suffixes for os, or an
// UnknownPlatformError if os isn't one of windows/macos/linux. Unknown
// platform is fatal at startup per spec.md §6.
func SuffixesFor(os string) (Suffixes, error) {
	s, ok := table[os]
	if !ok {
		return Suffixes{}, domain.UnknownPlatformError(os)
	}
	return s, nil
}
