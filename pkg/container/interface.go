// Package container defines the narrow capability set the execution engine
// needs from an isolation backend: create, start, exec, kill, remove. Two
// backends implement it (Docker, Kubernetes); the engine never imports either
// directly.
package container

import (
	"context"
	"time"
)

// Handle identifies a created container/pod across the Driver's lifecycle
// calls. Its zero value is never valid.
type Handle struct {
	ID string
}

// Spec describes the container to create. Driver.Create does not start it.
type Spec struct {
	Image           string
	Env             []string
	MemoryMB        int
	CPUCores        float64
	DisableNetwork  bool
	WorkDir         string // scratch directory mounted/created inside the container, e.g. "/code"
}

// ExecCommand is one command run inside an already-started container. Env
// overrides/extends the container's base environment for this exec only —
// the runner protocol (spec §6) changes EXECUTION_MODE/TEST_INPUT per call.
type ExecCommand struct {
	Cmd      []string
	Env      []string
	Stdin    []byte
	Deadline time.Time
}

// ExecResult is what came back from running an ExecCommand.
type ExecResult struct {
	ExitCode  int
	Stdout    []byte
	Stderr    []byte
	ElapsedMS int64
	TimedOut  bool
	OOMKilled bool
}

// Driver adapts an external container runtime into the five calls the
// execution engine's state machine needs. Every call fails with an *Error
// whose Kind is one of the bounded ErrorKind set in error.go; the driver never
// retries.
type Driver interface {
	Create(ctx context.Context, spec Spec) (Handle, error)
	Start(ctx context.Context, h Handle) error
	Exec(ctx context.Context, h Handle, cmd ExecCommand) (ExecResult, error)
	Kill(ctx context.Context, h Handle) error
	Remove(ctx context.Context, h Handle) error
}
