package compose

import (
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
	"github.com/miniodeploy/miniodeploy/pkg/shell"
)

// Driver drives one compose project with a fixed command form, file and
// environment.
type Driver struct {
	form Form
	file string
	env  []string
	log  *logrus.Entry
}

// NewDriver builds a driver for the given compose file. env holds KEY=VALUE
// pairs handed to every compose invocation (compose interpolates them into
// the descriptor).
func NewDriver(form Form, file string, env []string, log *logrus.Entry) *Driver {
	return &Driver{form: form, file: file, env: env, log: log}
}

// Form returns the resolved command form, for status output.
func (d *Driver) Form() Form {
	return d.form
}

// Up starts the stack detached.
func (d *Driver) Up() error {
	if _, stderr, err := d.run("up", "-d"); err != nil {
		return deploy.NewError(deploy.KindOrchestration,
			"failed to start the stack: %v\n%s", err, strings.TrimSpace(string(stderr)))
	}
	return nil
}

// Down stops and removes the stack's containers. Volumes and bind mounts are
// left in place.
func (d *Driver) Down() error {
	if _, stderr, err := d.run("down"); err != nil {
		return deploy.NewError(deploy.KindOrchestration,
			"failed to stop the stack: %v\n%s", err, strings.TrimSpace(string(stderr)))
	}
	return nil
}

// Running reports whether the named service has a running container.
func (d *Driver) Running(service string) (bool, error) {
	stdout, stderr, err := d.run("ps", "-q", service)
	if err != nil {
		return false, deploy.NewError(deploy.KindOrchestration,
			"failed to query the stack: %v\n%s", err, strings.TrimSpace(string(stderr)))
	}
	return strings.TrimSpace(string(stdout)) != "", nil
}

// Logs writes the last tail lines of the service logs to w, for diagnostics
// after a failed start.
func (d *Driver) Logs(w io.Writer, tail int) error {
	args := []string{"logs", "--no-color"}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}
	stdout, stderr, err := d.run(args...)
	if err != nil {
		return deploy.NewError(deploy.KindOrchestration,
			"failed to collect logs: %v\n%s", err, strings.TrimSpace(string(stderr)))
	}
	_, err = w.Write(stdout)
	return err
}

func (d *Driver) run(args ...string) ([]byte, []byte, error) {
	exe, argv := d.form.Command(append([]string{"-f", d.file}, args...)...)
	d.log.Debugf("compose: %s %v", exe, argv)
	return shell.RunEnv(d.env, exe, argv...)
}
