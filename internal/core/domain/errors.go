// Package domain contains the core domain models for the task graph:
// targets, tasks, the registry, cache keys, and hash records.
package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// BuildError and InternalError are the two error kinds spec.md §7
// distinguishes. BuildError is a user-visible, expected build failure
// (bad command exit, missing source, abstract target with no task,
// registry collision, malformed options); errors.Is(err, BuildError)
// succeeds for anything constructed with NewBuildError. InternalError
// marks anything else and is never caught at the driver boundary.
var (
	BuildError    = zerr.New("build error")
	InternalError = zerr.New("internal error")
)

// NewBuildError builds a BuildError-kind error with a formatted message.
// The result still satisfies errors.Is(err, BuildError).
func NewBuildError(format string, args ...any) error {
	return zerr.Wrap(BuildError, fmt.Sprintf(format, args...))
}

// NewInternalError wraps cause with msg. It deliberately does not chain the
// BuildError sentinel, so errors.Is(err, domain.BuildError) is false and the
// driver lets it surface unhandled, per spec.md §7.
func NewInternalError(cause error, msg string) error {
	return zerr.Wrap(cause, msg)
}

// ErrNoTargetsSpecified is returned when update() is called with an empty
// root target list and no default target is configured.
var ErrNoTargetsSpecified = zerr.Wrap(BuildError, "no targets specified")

// MissingSourceError reports that target has no registered task and does
// not exist on disk.
func MissingSourceError(target string) error {
	return zerr.With(NewBuildError("target %s has no task and doesn't exist", target), "target", target)
}

// AbstractNoTaskError reports that an abstract target has no registered task.
func AbstractNoTaskError(target string) error {
	return zerr.With(NewBuildError("abstract target %s has no task", target), "target", target)
}

// PrerequisiteFailedError wraps cause — the failure of target's own update —
// as it propagates to whatever requested target as a prerequisite. The
// original cause stays in the Unwrap chain (so the root driver's %+v report
// still names the deepest failure) while each level adds its own "target"
// metadata and a "prerequisite failed" frame.
func PrerequisiteFailedError(target string, cause error) error {
	return zerr.With(zerr.Wrap(cause, "prerequisite failed"), "target", target)
}

// CollisionError reports that a dynamically discovered prerequisite names a
// target already produced by another registered task.
func CollisionError(discovered, producer string) error {
	err := NewBuildError("discovered dependency %s collides with a registered target", discovered)
	err = zerr.With(err, "discovered", discovered)
	return zerr.With(err, "producer", producer)
}

// CommandFailedError reports a non-zero exit or spawn failure for a
// rendered command, including exitCode (-1 for a spawn error).
func CommandFailedError(cause error, rendered string, exitCode int) error {
	err := zerr.Wrap(NewBuildError("command failed: %s", rendered), cause.Error())
	err = zerr.With(err, "command", rendered)
	return zerr.With(err, "exit_code", exitCode)
}

// MalformedDepFileError reports that a dependency-info file did not start
// with the expected "x :" token pair.
func MalformedDepFileError(path string) error {
	return zerr.With(NewBuildError("malformed dependency file %s", path), "path", path)
}

// UnknownOptionError reports an unrecognized options map key.
func UnknownOptionError(key string) error {
	return zerr.With(NewBuildError("unknown option %q", key), "option", key)
}

// UnknownPlatformError reports an OS tag that isn't windows/macos/linux.
func UnknownPlatformError(os string) error {
	return zerr.With(NewBuildError("unknown platform %q", os), "os", os)
}
