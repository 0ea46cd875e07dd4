package compose

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

// ServiceName is the compose service the storage server runs under.
const ServiceName = "minio"

// Descriptor is the compose file model. Only the fields this tool manages
// are represented.
type Descriptor struct {
	Services map[string]Service `yaml:"services"`
}

type Service struct {
	Image         string       `yaml:"image"`
	ContainerName string       `yaml:"container_name,omitempty"`
	Command       string       `yaml:"command,omitempty"`
	Environment   []string     `yaml:"environment,omitempty"`
	Ports         []string     `yaml:"ports,omitempty"`
	Volumes       []string     `yaml:"volumes,omitempty"`
	Restart       string       `yaml:"restart,omitempty"`
	Healthcheck   *Healthcheck `yaml:"healthcheck,omitempty"`
}

type Healthcheck struct {
	Test     []string `yaml:"test"`
	Interval string   `yaml:"interval,omitempty"`
	Timeout  string   `yaml:"timeout,omitempty"`
	Retries  int      `yaml:"retries,omitempty"`
}

// DefaultDescriptor renders the stack for a deployment configuration.
// Credentials are referenced through compose interpolation so they never
// land in the descriptor file itself.
func DefaultDescriptor(cfg *deploy.Config) *Descriptor {
	return &Descriptor{
		Services: map[string]Service{
			ServiceName: {
				Image:         cfg.Image,
				ContainerName: "minio",
				Command:       fmt.Sprintf("server /data --console-address \":%d\"", cfg.ConsolePort),
				Environment: []string{
					"MINIO_ROOT_USER=${MINIO_ROOT_USER}",
					"MINIO_ROOT_PASSWORD=${MINIO_ROOT_PASSWORD}",
				},
				Ports: []string{
					// The server always listens on 9000 inside the
					// container; only the published side is configurable.
					fmt.Sprintf("%d:9000", cfg.APIPort),
					fmt.Sprintf("%d:%d", cfg.ConsolePort, cfg.ConsolePort),
				},
				Volumes: []string{
					cfg.DataDir + ":/data",
					cfg.CertDir + ":/root/.minio/certs",
				},
				Restart: "unless-stopped",
				Healthcheck: &Healthcheck{
					// Runs inside the container, so it probes the internal
					// port regardless of the published one.
					Test: []string{"CMD", "curl", "-kf",
						"https://localhost:9000/minio/health/live"},
					Interval: "30s",
					Timeout:  "10s",
					Retries:  3,
				},
			},
		},
	}
}

// WriteDescriptor marshals d to path. An existing file is left alone so
// user edits survive redeploys.
func WriteDescriptor(path string, d *Descriptor) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := yaml.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal compose descriptor")
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "Failed to write compose descriptor to "+path)
	}
	return nil
}

// ReadDescriptor parses the compose file at path.
func ReadDescriptor(path string) (*Descriptor, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read compose descriptor "+path)
	}
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "Failed to parse compose descriptor "+path)
	}
	return &d, nil
}
