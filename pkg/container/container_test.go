package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withFiles(t *testing.T, dockerEnv bool, cgroup string) {
	t.Helper()
	dir := t.TempDir()

	oldDocker, oldCgroup := dockerEnvFile, cgroupFile
	t.Cleanup(func() {
		dockerEnvFile, cgroupFile = oldDocker, oldCgroup
	})

	dockerEnvFile = filepath.Join(dir, ".dockerenv")
	cgroupFile = filepath.Join(dir, "cgroup")

	if dockerEnv {
		assert.NoError(t, os.WriteFile(dockerEnvFile, nil, 0o600))
	}
	if cgroup != "" {
		assert.NoError(t, os.WriteFile(cgroupFile, []byte(cgroup), 0o600))
	}
}

func TestRuntime(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "")

	tests := []struct {
		name      string
		dockerEnv bool
		cgroup    string
		expected  string
	}{
		{"bare metal", false, "0::/init.scope\n", RuntimeNone},
		{"no cgroup file", false, "", RuntimeNone},
		{"docker env file", true, "", RuntimeDocker},
		{"docker cgroup", false, "0::/docker/abc123\n", RuntimeDocker},
		{"containerd cgroup", false, "0::/system.slice/containerd.service\n", RuntimeContainerd},
		{"kubepods cgroup", false, "0::/kubepods/besteffort/pod1\n", RuntimeKubernetes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFiles(t, tt.dockerEnv, tt.cgroup)
			assert.Equal(t, tt.expected, Runtime())
			assert.Equal(t, tt.expected != RuntimeNone, IsContainerised())
		})
	}
}

func TestRuntime_KubernetesEnv(t *testing.T) {
	withFiles(t, false, "")
	t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")
	assert.Equal(t, RuntimeKubernetes, Runtime())
}
