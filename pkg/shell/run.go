package shell

import (
	"bytes"
	"errors"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

const (
	Shell = "/bin/bash"
	Exec  = "-c"
)

// Run executes exe with args and returns captured stdout and stderr.
func Run(exe string, args ...string) ([]byte, []byte, error) {
	return RunEnv(nil, exe, args...)
}

// RunEnv is Run with extra KEY=VALUE pairs appended to the inherited
// environment. Compose invocations use this to pass the deployment values
// without exporting them process-wide. Both streams are buffered by the
// runtime, so a chatty child can't block on a full pipe.
func RunEnv(env []string, exe string, args ...string) ([]byte, []byte, error) {

	log.Debugf("exec %s %v", exe, args)

	cmd := exec.Command(exe, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// RunSimple runs exe and returns stdout as a string, treating any stderr
// output as an error.
func RunSimple(exe string, args ...string) (string, error) {

	stdout, stderr, err := Run(exe, args...)
	if err != nil {
		return "", err
	}

	if len(stderr) > 0 {
		return "", errors.New(string(stderr))
	}

	return string(stdout), nil
}
