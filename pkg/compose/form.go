// Container-compose orchestration for the storage stack. Modeled as a thin
// driver over whichever compose command the host actually has.
package compose

import (
	"github.com/miniodeploy/miniodeploy/pkg/deploy"
	"github.com/miniodeploy/miniodeploy/pkg/shell"
)

// Form identifies which compose command flavor is installed. It is resolved
// once per run and held for the run's duration.
type Form int

const (
	// ModernForm is the `docker compose` plugin.
	ModernForm Form = iota
	// LegacyForm is the standalone `docker-compose` binary.
	LegacyForm
)

func (f Form) String() string {
	if f == LegacyForm {
		return "docker-compose"
	}
	return "docker compose"
}

// Command expands a compose subcommand into the executable and argument list
// for this form.
func (f Form) Command(args ...string) (string, []string) {
	if f == LegacyForm {
		return "docker-compose", args
	}
	return "docker", append([]string{"compose"}, args...)
}

// probeFunc runs a command and reports whether it succeeded. Swappable in
// tests.
type probeFunc func(exe string, args ...string) error

func runProbe(exe string, args ...string) error {
	_, _, err := shell.Run(exe, args...)
	return err
}

// DetectForm probes for the modern plugin first, then the legacy binary.
func DetectForm() (Form, error) {
	return detectForm(runProbe)
}

func detectForm(probe probeFunc) (Form, error) {
	if err := probe("docker", "compose", "version"); err == nil {
		return ModernForm, nil
	}
	if err := probe("docker-compose", "version"); err == nil {
		return LegacyForm, nil
	}
	return ModernForm, deploy.NewError(deploy.KindPrereq,
		"neither 'docker compose' nor 'docker-compose' is available").
		WithRemediation("install Docker with the compose plugin (https://docs.docker.com/compose/install/), e.g. 'sudo apt install docker-compose-plugin'")
}
