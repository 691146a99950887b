// Package kubernetes adapts k8s.io/client-go into pkg/container's Driver
// interface. Ported from the teacher's internal/runtime/kubernetes.KubernetesRuntime,
// which ran one batchv1.Job per compilation and read its logs once the Job
// finished. Optimus needs to run a compile exec followed by N execute execs
// against the *same* sandbox, so the Job-per-call shape is replaced with a
// long-running corev1.Pod and client-go's remotecommand executor — the
// standard client-go pattern for "kubectl exec", reusing the very same
// k8s.io/client-go, k8s.io/api and k8s.io/apimachinery modules the teacher
// already depends on.
package kubernetes

import (
	"bytes"
	"context"
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	pkgcontainer "github.com/optimuscode/optimus/pkg/container"
)

// Driver implements pkg/container.Driver by running each container as a
// single-container Pod with a sleeping entrypoint.
type Driver struct {
	clientset *kubernetes.Clientset
	config    *rest.Config
	namespace string
}

// New creates a Kubernetes-backed Driver using in-cluster config.
func New(namespace string) (*Driver, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get in-cluster config: %w (are you running inside Kubernetes?)", err)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}
	if namespace == "" {
		namespace = "default"
	}
	return &Driver{clientset: clientset, config: cfg, namespace: namespace}, nil
}

func podName(h pkgcontainer.Handle) string { return "optimus-sandbox-" + h.ID }

// ImageExists always reports true: Kubernetes resolves images at Pod
// scheduling time via the image pull policy, exactly as the teacher's
// KubernetesRuntime.ImageExists documents.
func (d *Driver) ImageExists(ctx context.Context, imageTag string) (bool, error) {
	return true, nil
}

// Create submits a single-container Pod with a sleeping entrypoint, the job's
// resource caps, and an empty-dir scratch working directory, and returns
// without waiting for it to run (Start does the waiting). spec.DisableNetwork
// is not applied: the Pod gets the cluster's normal pod networking.
func (d *Driver) Create(ctx context.Context, spec pkgcontainer.Spec) (pkgcontainer.Handle, error) {
	id := randSuffix()
	h := pkgcontainer.Handle{ID: id}

	memQty := resource.MustParse(fmt.Sprintf("%dMi", maxInt(spec.MemoryMB, 128)))
	cpuMilli := int64(spec.CPUCores * 1000)
	if cpuMilli <= 0 {
		cpuMilli = 500
	}
	cpuQty := resource.MustParse(fmt.Sprintf("%dm", cpuMilli))

	workDir := spec.WorkDir
	if workDir == "" {
		workDir = "/code"
	}

	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      podName(h),
			Namespace: d.namespace,
			Labels: map[string]string{
				"app":        "optimus",
				"component":  "sandbox",
				"managed-by": "optimus",
			},
		},
		Spec: corev1.PodSpec{
			RestartPolicy: corev1.RestartPolicyNever,
			SecurityContext: &corev1.PodSecurityContext{
				RunAsNonRoot: ptr(true),
				RunAsUser:    ptr(int64(1000)),
				FSGroup:      ptr(int64(1000)),
				SeccompProfile: &corev1.SeccompProfile{
					Type: corev1.SeccompProfileTypeRuntimeDefault,
				},
			},
			Containers: []corev1.Container{
				{
					Name:       "sandbox",
					Image:      spec.Image,
					Command:    []string{"sleep", "infinity"},
					Env:        convertEnv(spec.Env),
					WorkingDir: workDir,
					Resources: corev1.ResourceRequirements{
						Limits: corev1.ResourceList{
							corev1.ResourceCPU:    cpuQty,
							corev1.ResourceMemory: memQty,
						},
					},
					SecurityContext: &corev1.SecurityContext{
						AllowPrivilegeEscalation: ptr(false),
						RunAsNonRoot:             ptr(true),
						RunAsUser:                ptr(int64(1000)),
						Capabilities:             &corev1.Capabilities{Drop: []corev1.Capability{"ALL"}},
					},
					VolumeMounts: []corev1.VolumeMount{
						{Name: "tmp", MountPath: "/tmp"},
						{Name: "code", MountPath: workDir},
					},
				},
			},
			Volumes: []corev1.Volume{
				{Name: "tmp", VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{
					Medium: corev1.StorageMediumMemory, SizeLimit: resource.NewQuantity(64*1024*1024, resource.BinarySI),
				}}},
				{Name: "code", VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}},
			},
		},
	}

	if _, err := d.clientset.CoreV1().Pods(d.namespace).Create(ctx, pod, metav1.CreateOptions{}); err != nil {
		return pkgcontainer.Handle{}, pkgcontainer.NewError("create", pkgcontainer.ErrorKindCreate, err)
	}
	return h, nil
}

// Start waits for the Pod to reach Running phase.
func (d *Driver) Start(ctx context.Context, h pkgcontainer.Handle) error {
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		pod, err := d.clientset.CoreV1().Pods(d.namespace).Get(ctx, podName(h), metav1.GetOptions{})
		if err != nil {
			return pkgcontainer.NewError("start", pkgcontainer.ErrorKindStart, err)
		}
		switch pod.Status.Phase {
		case corev1.PodRunning:
			return nil
		case corev1.PodFailed:
			return pkgcontainer.NewError("start", pkgcontainer.ErrorKindStart, fmt.Errorf("pod failed before running: %s", pod.Status.Reason))
		}
		select {
		case <-ctx.Done():
			return pkgcontainer.NewError("start", pkgcontainer.ErrorKindTimeout, ctx.Err())
		case <-time.After(200 * time.Millisecond):
		}
	}
	return pkgcontainer.NewError("start", pkgcontainer.ErrorKindTimeout, fmt.Errorf("pod did not reach Running within timeout"))
}

// Exec runs a command inside the pod's sandbox container via
// remotecommand.NewSPDYExecutor — the client-go equivalent of `kubectl exec`.
func (d *Driver) Exec(ctx context.Context, h pkgcontainer.Handle, cmd pkgcontainer.ExecCommand) (pkgcontainer.ExecResult, error) {
	start := time.Now()

	if !cmd.Deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, cmd.Deadline)
		defer cancel()
	}

	fullCmd := cmd.Cmd
	if len(cmd.Env) > 0 {
		fullCmd = append([]string{"env"}, append(cmd.Env, cmd.Cmd...)...)
	}

	req := d.clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Name(podName(h)).
		Namespace(d.namespace).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: "sandbox",
			Command:   fullCmd,
			Stdin:     len(cmd.Stdin) > 0,
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(d.config, "POST", req.URL())
	if err != nil {
		return pkgcontainer.ExecResult{}, pkgcontainer.NewError("exec", pkgcontainer.ErrorKindExec, err)
	}

	// Captured in full: verdict comparison needs the untruncated bytes
	// (spec.md §8). Truncation for display is applied at the HTTP layer.
	var stdout, stderr bytes.Buffer

	streamErr := make(chan error, 1)
	go func() {
		streamErr <- executor.StreamWithContext(ctx, remotecommand.StreamOptions{
			Stdin:  bytes.NewReader(cmd.Stdin),
			Stdout: &stdout,
			Stderr: &stderr,
		})
	}()

	result := pkgcontainer.ExecResult{}
	select {
	case err := <-streamErr:
		result.ElapsedMS = time.Since(start).Milliseconds()
		result.Stdout = stdout.Bytes()
		result.Stderr = stderr.Bytes()
		result.OOMKilled = d.sandboxOOMKilled(context.WithoutCancel(ctx), h)
		if err != nil {
			if exitErr, ok := err.(exitCodeError); ok {
				result.ExitCode = exitErr.ExitStatus()
				return result, nil
			}
			return result, pkgcontainer.NewError("exec", pkgcontainer.ErrorKindExec, err)
		}
		result.ExitCode = 0
		return result, nil
	case <-ctx.Done():
		result.TimedOut = true
		result.ExitCode = -1
		result.ElapsedMS = time.Since(start).Milliseconds()
		result.Stdout = stdout.Bytes()
		result.Stderr = stderr.Bytes()
		return result, nil
	}
}

// sandboxOOMKilled reads the sandbox container's terminated-reason off the
// pod status, matching the Docker backend's ContainerJSON.State.OOMKilled
// read. The pod's RestartPolicy is Never, so an OOM-killed container leaves
// its terminated state in place rather than restarting; the state can also
// show up as LastTerminationState if the kubelet has already recorded a
// restart attempt before we observe it.
func (d *Driver) sandboxOOMKilled(ctx context.Context, h pkgcontainer.Handle) bool {
	pod, err := d.clientset.CoreV1().Pods(d.namespace).Get(ctx, podName(h), metav1.GetOptions{})
	if err != nil {
		return false
	}
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Name != "sandbox" {
			continue
		}
		if cs.State.Terminated != nil && cs.State.Terminated.Reason == "OOMKilled" {
			return true
		}
		if cs.LastTerminationState.Terminated != nil && cs.LastTerminationState.Terminated.Reason == "OOMKilled" {
			return true
		}
	}
	return false
}

// exitCodeError is implemented by client-go's exec.CodeExitError.
type exitCodeError interface {
	error
	ExitStatus() int
}

// Kill deletes the pod immediately (grace period zero), the pod equivalent of
// SIGKILL.
func (d *Driver) Kill(ctx context.Context, h pkgcontainer.Handle) error {
	grace := int64(0)
	err := d.clientset.CoreV1().Pods(d.namespace).Delete(ctx, podName(h), metav1.DeleteOptions{GracePeriodSeconds: &grace})
	if err != nil && !apierrors.IsNotFound(err) {
		return pkgcontainer.NewError("kill", pkgcontainer.ErrorKindGone, err)
	}
	return nil
}

// Remove deletes the pod if it still exists. Idempotent.
func (d *Driver) Remove(ctx context.Context, h pkgcontainer.Handle) error {
	err := d.clientset.CoreV1().Pods(d.namespace).Delete(ctx, podName(h), metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return pkgcontainer.NewError("remove", pkgcontainer.ErrorKindGone, err)
	}
	return nil
}

// Close releases driver resources; the Kubernetes clientset needs none.
func (d *Driver) Close() error { return nil }

func convertEnv(envVars []string) []corev1.EnvVar {
	result := make([]corev1.EnvVar, 0, len(envVars))
	for _, e := range envVars {
		for i := range e {
			if e[i] == '=' {
				result = append(result, corev1.EnvVar{Name: e[:i], Value: e[i+1:]})
				break
			}
		}
	}
	return result
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ptr[T any](v T) *T { return &v }

func randSuffix() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

// Ensure Driver implements pkg/container.Driver.
var _ pkgcontainer.Driver = (*Driver)(nil)
