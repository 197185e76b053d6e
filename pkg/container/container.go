package container

import (
	"os"
	"strings"
)

const (
	RuntimeNone       = ""
	RuntimeDocker     = "docker"
	RuntimeContainerd = "containerd"
	RuntimeKubernetes = "kubernetes"
)

var (
	dockerEnvFile = "/.dockerenv"
	cgroupFile    = "/proc/1/cgroup"
)

// IsContainerised reports whether the process looks like it runs inside a
// container
func IsContainerised() bool {
	return Runtime() != RuntimeNone
}

// Runtime names the detected container runtime, or RuntimeNone
func Runtime() string {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return RuntimeKubernetes
	}
	if _, err := os.Stat(dockerEnvFile); err == nil {
		return RuntimeDocker
	}

	data, err := os.ReadFile(cgroupFile)
	if err != nil {
		return RuntimeNone
	}
	content := string(data)
	switch {
	case strings.Contains(content, "kubepods"):
		return RuntimeKubernetes
	case strings.Contains(content, "docker"):
		return RuntimeDocker
	case strings.Contains(content, "containerd"):
		return RuntimeContainerd
	}
	return RuntimeNone
}
