// Package ports defines the interfaces the engine depends on, implemented
// by internal/adapters.
package ports

import "context"

// Runner executes a task's recipe lines as external commands, spawned
// directly rather than through a shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes command, a single argv vector, with label identifying the
	// task for log output. It returns a domain.CommandFailedError on
	// non-zero exit.
	Run(ctx context.Context, command []string, label string) error
}
