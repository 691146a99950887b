// Package docker adapts github.com/docker/docker/client into pkg/container's
// narrow Driver interface. Ported from the teacher's internal/docker.Client,
// generalized from "create one container, run its entrypoint once, wait for
// exit" to "create one long-lived container, exec into it N times" — the
// shape spec.md §4.1/§4.2 needs for compile-then-execute-many.
package docker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"

	pkgcontainer "github.com/optimuscode/optimus/pkg/container"
)

// Driver implements pkg/container.Driver over the Docker Engine API.
type Driver struct {
	cli *client.Client
}

// New creates a Docker-backed Driver.
func New() (*Driver, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Driver{cli: cli}, nil
}

// ImageExists checks if a Docker image is present locally, ported from the
// teacher's Client.ImageExists.
func (d *Driver) ImageExists(ctx context.Context, imageTag string) (bool, error) {
	_, err := d.cli.ImageInspect(ctx, imageTag)
	if err != nil {
		if errdefs.IsNotFound(err) { //nolint:staticcheck // SA1019: errdefs.IsNotFound is still correct here
			return false, nil
		}
		return false, fmt.Errorf("failed to inspect image: %w", err)
	}
	return true, nil
}

// Create provisions a long-lived, network-disabled, resource-capped
// container but does not start it. The entrypoint sleeps forever so the
// engine can exec into it repeatedly (compile once, execute N times).
func (d *Driver) Create(ctx context.Context, spec pkgcontainer.Spec) (pkgcontainer.Handle, error) {
	workDir := spec.WorkDir
	if workDir == "" {
		workDir = "/code"
	}

	cpuQuota := int64(spec.CPUCores * 100000)
	if cpuQuota <= 0 {
		cpuQuota = 50000 // 0.5 CPU default, matches teacher's MaxCPUQuota
	}
	memBytes := int64(spec.MemoryMB) * 1024 * 1024
	if memBytes <= 0 {
		memBytes = 128 * 1024 * 1024 // matches teacher's MaxMemory
	}

	containerConfig := &container.Config{
		Image:           spec.Image,
		Cmd:             []string{"sleep", "infinity"},
		WorkingDir:      workDir,
		NetworkDisabled: spec.DisableNetwork,
		Env:             spec.Env,
	}

	hostConfig := &container.HostConfig{
		Resources: container.Resources{
			Memory:     memBytes,
			MemorySwap: memBytes,
			CPUQuota:   cpuQuota,
			PidsLimit:  ptr(int64(100)),
		},
		SecurityOpt:    []string{"no-new-privileges"},
		ReadonlyRootfs: false,
		CapDrop:        []string{"ALL"},
		Tmpfs: map[string]string{
			"/tmp": "rw,noexec,nosuid,size=64m",
		},
		Mounts: []mount.Mount{},
	}

	resp, err := d.cli.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return pkgcontainer.Handle{}, pkgcontainer.NewError("create", pkgcontainer.ErrorKindCreate, err)
	}

	return pkgcontainer.Handle{ID: resp.ID}, nil
}

// Start transitions the container to running.
func (d *Driver) Start(ctx context.Context, h pkgcontainer.Handle) error {
	if err := d.cli.ContainerStart(ctx, h.ID, container.StartOptions{}); err != nil {
		return pkgcontainer.NewError("start", pkgcontainer.ErrorKindStart, err)
	}
	return nil
}

// Exec runs a command inside the running container, piping stdin. When
// cmd.Deadline passes, Exec returns with TimedOut set and ExitCode -1; the
// exec'd process is not killed and keeps running inside the container until
// the container itself is killed.
func (d *Driver) Exec(ctx context.Context, h pkgcontainer.Handle, cmd pkgcontainer.ExecCommand) (pkgcontainer.ExecResult, error) {
	start := time.Now()

	if !cmd.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, cmd.Deadline)
		defer cancel()
	}

	execResp, err := d.cli.ContainerExecCreate(ctx, h.ID, container.ExecOptions{
		Cmd:          cmd.Cmd,
		Env:          cmd.Env,
		AttachStdin:  len(cmd.Stdin) > 0,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return pkgcontainer.ExecResult{}, pkgcontainer.NewError("exec", pkgcontainer.ErrorKindExec, err)
	}

	attach, err := d.cli.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return pkgcontainer.ExecResult{}, pkgcontainer.NewError("exec", pkgcontainer.ErrorKindExec, err)
	}
	defer attach.Close()

	if len(cmd.Stdin) > 0 {
		go func() {
			_, _ = attach.Conn.Write(cmd.Stdin) //nolint:errcheck // best effort, exec inspect reports the real outcome
			_ = attach.CloseWrite()             //nolint:errcheck // best effort
		}()
	}

	// Captured in full: verdict comparison needs the untruncated bytes
	// (spec.md §8). Truncation for display is applied at the HTTP layer.
	var stdout, stderr bytes.Buffer

	copyDone := make(chan error, 1)
	go func() {
		_, copyErr := stdcopy.StdCopy(&stdout, &stderr, attach.Reader)
		copyDone <- copyErr
	}()

	timedOut := false
	select {
	case <-copyDone:
	case <-ctx.Done():
		timedOut = true
		// draining continues in the background; we don't wait on it once the
		// deadline fires, the exec itself is abandoned inside the container.
	}

	inspectCtx := context.WithoutCancel(ctx)
	inspect, inspectErr := d.cli.ContainerExecInspect(inspectCtx, execResp.ID)

	result := pkgcontainer.ExecResult{
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		ElapsedMS: time.Since(start).Milliseconds(),
		TimedOut:  timedOut,
	}

	if timedOut {
		result.ExitCode = -1
		return result, nil
	}

	if inspectErr != nil {
		return result, pkgcontainer.NewError("exec", pkgcontainer.ErrorKindExec, inspectErr)
	}
	result.ExitCode = inspect.ExitCode

	containerInfo, inspectContainerErr := d.cli.ContainerInspect(inspectCtx, h.ID)
	if inspectContainerErr == nil && containerInfo.State != nil && containerInfo.State.OOMKilled {
		result.OOMKilled = true
	}

	return result, nil
}

// Kill sends SIGKILL to the container. Idempotent: killing an already-dead
// or already-removed container is not an error.
func (d *Driver) Kill(ctx context.Context, h pkgcontainer.Handle) error {
	if err := d.cli.ContainerKill(ctx, h.ID, "SIGKILL"); err != nil {
		if errdefs.IsNotFound(err) { //nolint:staticcheck // SA1019: matches ImageExists' usage
			return nil
		}
		return pkgcontainer.NewError("kill", pkgcontainer.ErrorKindGone, err)
	}
	return nil
}

// Remove reclaims container resources. Idempotent.
func (d *Driver) Remove(ctx context.Context, h pkgcontainer.Handle) error {
	err := d.cli.ContainerRemove(ctx, h.ID, container.RemoveOptions{Force: true, RemoveVolumes: true})
	if err != nil && !errdefs.IsNotFound(err) { //nolint:staticcheck // SA1019: matches ImageExists' usage
		return pkgcontainer.NewError("remove", pkgcontainer.ErrorKindGone, err)
	}
	return nil
}

// Close closes the underlying Docker client.
func (d *Driver) Close() error {
	return d.cli.Close()
}

func ptr[T any](v T) *T { return &v }

// Ensure Driver implements pkg/container.Driver.
var _ pkgcontainer.Driver = (*Driver)(nil)
