// Package container ports the teacher's internal/runtime/factory.go
// auto-detection logic (presence of KUBERNETES_SERVICE_HOST signals an
// in-cluster environment) to select between the Docker and Kubernetes
// pkg/container.Driver implementations.
package container

import (
	"fmt"
	"os"

	"github.com/optimuscode/optimus/internal/container/docker"
	"github.com/optimuscode/optimus/internal/container/kubernetes"
	pkgcontainer "github.com/optimuscode/optimus/pkg/container"
)

// Type selects which backend New builds.
type Type string

const (
	TypeDocker     Type = "docker"
	TypeKubernetes Type = "kubernetes"
	TypeAuto       Type = "auto"
)

// New creates a pkg/container.Driver for the given backend type. "auto"
// detects Kubernetes via the KUBERNETES_SERVICE_HOST env var, falling back to
// Docker for local development.
func New(t Type, namespace string) (pkgcontainer.Driver, error) {
	switch t {
	case TypeDocker:
		return docker.New()
	case TypeKubernetes:
		return kubernetes.New(namespace)
	case TypeAuto:
		return NewAuto(namespace)
	default:
		return nil, fmt.Errorf("unknown container driver type: %s", t)
	}
}

// NewAuto auto-detects the environment.
func NewAuto(namespace string) (pkgcontainer.Driver, error) {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return kubernetes.New(namespace)
	}
	return docker.New()
}

// DetectType returns the Type that NewAuto would select.
func DetectType() Type {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return TypeKubernetes
	}
	return TypeDocker
}
