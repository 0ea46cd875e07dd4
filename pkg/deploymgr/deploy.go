package deploymgr

import (
	"os"

	"github.com/miniodeploy/miniodeploy/pkg/compose"
	"github.com/miniodeploy/miniodeploy/pkg/deploy"
)

// Options selects which parts of the deployment pipeline run.
type Options struct {
	// SkipChecks bypasses the external-tool probe.
	SkipChecks bool
	// CertsOnly stops after the certificates are in place.
	CertsOnly bool
	// DeployOnly skips certificate generation and deploys with whatever is
	// in the certs directory.
	DeployOnly bool
	// ForceRegen discards an existing certificate pair.
	ForceRegen bool
}

// Deploy runs the full pipeline: validate, check prerequisites, certificates,
// data directory, compose descriptor, start, liveness. The first failing
// stage aborts the run; nothing is rolled back.
func (m *DeployManager) Deploy(opts Options) error {
	log := m.Logger.WithField("module", "deploy")

	steps := []deploy.Step{
		{Name: "Configuration validation", Run: m.Config.Validate},
	}
	if !opts.SkipChecks {
		steps = append(steps, deploy.Step{Name: "Prerequisite check", Run: m.checkPrereqs})
	}
	if !opts.DeployOnly {
		steps = append(steps, deploy.Step{Name: "Certificate generation", Run: func() error {
			return m.EnsureCertificates(opts.ForceRegen)
		}})
	}
	if !opts.CertsOnly {
		steps = append(steps,
			deploy.Step{Name: "Data directory provisioning", Run: m.ProvisionDataDir},
			deploy.Step{Name: "Compose descriptor", Run: m.WriteComposeDescriptor},
			deploy.Step{Name: "Stack startup", Run: m.StartStack},
			deploy.Step{Name: "Liveness wait", Run: m.WaitHealthy},
		)
	}

	err := deploy.RunPipeline(log, steps)
	if err != nil && deploy.KindOf(err) == deploy.KindOrchestration {
		m.Logger.Error("Stack failed to start; recent service logs follow")
		m.DumpLogs(os.Stderr, 50)
	}
	return err
}

// Verify inspects a running deployment: compose state, one short liveness
// poll, then the S3 smoke check.
func (m *DeployManager) Verify() error {
	if err := m.Config.Validate(); err != nil {
		return err
	}

	driver, err := m.ComposeDriver()
	if err != nil {
		return err
	}
	running, err := driver.Running(compose.ServiceName)
	if err != nil {
		return err
	}
	if !running {
		return deploy.NewError(deploy.KindOrchestration, "the %s service is not running", compose.ServiceName).
			WithRemediation("run 'miniodeploy deploy' to start it")
	}

	poller := newVerifyPoller(m)
	if err := poller.Wait(m.HealthURL()); err != nil {
		return err
	}

	summary, err := m.CheckS3()
	if err != nil {
		return deploy.NewError(deploy.KindReadiness, "liveness passed but the S3 API check failed: %v", err)
	}
	m.Logger.Info(summary)
	return nil
}
