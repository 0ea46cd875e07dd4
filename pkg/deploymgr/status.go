package deploymgr

import (
	"fmt"
	"io"
	"time"

	"github.com/miniodeploy/miniodeploy/pkg/health"
)

// newVerifyPoller returns a short-budget poller for inspecting an
// already-running deployment, as opposed to waiting out a cold start.
func newVerifyPoller(m *DeployManager) *health.Poller {
	poller := health.NewPoller(m.Logger.WithField("module", "health"))
	poller.MaxAttempts = 3
	poller.Interval = 2 * time.Second
	return poller
}

// StatusReport prints the access URLs, credentials and management hints for
// the deployment. The output depends only on the configuration and detected
// identity, so repeated runs over an unchanged deployment print the same
// text.
func (m *DeployManager) StatusReport(w io.Writer) error {
	ident, err := m.Identity()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "MinIO is deployed.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  S3 API:      https://%s:%d  (also https://localhost:%d)\n",
		ident.IP, m.Config.APIPort, m.Config.APIPort)
	fmt.Fprintf(w, "  Web console: https://%s:%d\n", ident.IP, m.Config.ConsolePort)
	fmt.Fprintf(w, "  Credentials: %s / %s\n", m.Config.RootUser, m.Config.RootPassword)
	fmt.Fprintf(w, "  Data:        %s\n", m.Config.DataDir)
	fmt.Fprintf(w, "  Certs:       %s\n", m.Config.CertDir)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The certificate is self-signed; clients must trust it or skip verification.")
	fmt.Fprintln(w, "Fetch it with: miniodeploy certs extract --host "+ident.IP)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage the deployment with:")
	fmt.Fprintln(w, "  miniodeploy verify   # check liveness and the S3 API")
	fmt.Fprintln(w, "  miniodeploy logs     # recent service logs")
	fmt.Fprintln(w, "  miniodeploy stop     # stop the stack (data is kept)")
	if m.driver != nil {
		fmt.Fprintf(w, "  %s -f %s ...\n", m.driver.Form(), m.Config.ComposeFile)
	}
	return nil
}
