package compose

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

func testConfig() *deploy.Config {
	return &deploy.Config{
		RootUser:     "storage-admin",
		RootPassword: "a-long-enough-secret",
		DataDir:      "/srv/minio/data",
		CertDir:      "/srv/minio/certs",
		APIPort:      9000,
		ConsolePort:  9001,
		Image:        "minio/minio:latest",
		Loaded:       true,
	}
}

func TestDefaultDescriptor(t *testing.T) {
	d := DefaultDescriptor(testConfig())

	svc, ok := d.Services[ServiceName]
	require.True(t, ok, "descriptor must declare the %s service", ServiceName)

	assert.Equal(t, "minio/minio:latest", svc.Image)
	assert.Contains(t, svc.Command, "--console-address \":9001\"")
	assert.Contains(t, svc.Ports, "9000:9000")
	assert.Contains(t, svc.Ports, "9001:9001")
	assert.Contains(t, svc.Volumes, "/srv/minio/data:/data")
	assert.Contains(t, svc.Volumes, "/srv/minio/certs:/root/.minio/certs")

	// Credentials go through compose interpolation, never into the file.
	assert.Contains(t, svc.Environment, "MINIO_ROOT_USER=${MINIO_ROOT_USER}")
	assert.Contains(t, svc.Environment, "MINIO_ROOT_PASSWORD=${MINIO_ROOT_PASSWORD}")
	for _, env := range svc.Environment {
		assert.NotContains(t, env, "a-long-enough-secret")
	}

	require.NotNil(t, svc.Healthcheck)
	assert.Contains(t, svc.Healthcheck.Test[len(svc.Healthcheck.Test)-1], "/minio/health/live")
}

func TestDefaultDescriptorCustomAPIPort(t *testing.T) {
	cfg := testConfig()
	cfg.APIPort = 9443

	svc := DefaultDescriptor(cfg).Services[ServiceName]

	// The container always listens on 9000; a custom API port only moves
	// the published side of the mapping.
	assert.Contains(t, svc.Ports, "9443:9000")
	for _, port := range svc.Ports {
		assert.NotContains(t, port, ":9443", "nothing listens on container port 9443")
	}

	// The healthcheck runs inside the container and must keep probing the
	// internal port.
	require.NotNil(t, svc.Healthcheck)
	assert.Contains(t, svc.Healthcheck.Test[len(svc.Healthcheck.Test)-1],
		"localhost:9000/minio/health/live")
}

func TestWriteAndReadDescriptor(t *testing.T) {
	dir, err := ioutil.TempDir("", "compose-test")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "docker-compose.yml")

	require.Nil(t, WriteDescriptor(path, DefaultDescriptor(testConfig())))

	d, err := ReadDescriptor(path)
	require.Nil(t, err)
	svc := d.Services[ServiceName]
	assert.Equal(t, "minio/minio:latest", svc.Image)
	assert.Equal(t, "unless-stopped", svc.Restart)
}

func TestWriteDescriptorKeepsUserEdits(t *testing.T) {
	dir, err := ioutil.TempDir("", "compose-test")
	require.Nil(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "docker-compose.yml")

	edited := []byte("services: {}\n# hand edited\n")
	require.Nil(t, ioutil.WriteFile(path, edited, 0644))

	require.Nil(t, WriteDescriptor(path, DefaultDescriptor(testConfig())))

	data, err := ioutil.ReadFile(path)
	require.Nil(t, err)
	assert.Equal(t, edited, data, "an existing descriptor must not be overwritten")
}
