// Handles the "miniodeploy deploy" command
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
	"github.com/miniodeploy/miniodeploy/pkg/deploymgr"
)

var deployCmdConfig struct {
	skipChecks bool
	certsOnly  bool
	deployOnly bool
	regenCerts bool
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Run the full deployment pipeline",
	Long: `Validates the configuration, generates (or reuses) the self-signed
certificate, provisions the data directory, starts the stack and waits for
the server to report live. The pipeline stops at the first failure and
leaves prior state in place for inspection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := deploymgr.Options{
			SkipChecks: deployCmdConfig.skipChecks,
			CertsOnly:  deployCmdConfig.certsOnly,
			DeployOnly: deployCmdConfig.deployOnly,
			ForceRegen: deployCmdConfig.regenCerts,
		}

		err := mgr.Deploy(opts)
		if err != nil {
			if deploy.KindOf(err) == deploy.KindReadiness {
				// The stack is up but not answering yet. Warn rather than
				// fail hard, but still exit non-zero.
				mgr.Logger.Warn(err.Error())
				return errors.New("deployment is likely still starting")
			}
			return errors.Wrap(err, "Deploy command failed")
		}

		if opts.CertsOnly {
			mgr.Logger.Info("Certificates are in place; skipping deployment")
			return nil
		}
		return mgr.StatusReport(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().BoolVar(&deployCmdConfig.skipChecks, "skip-checks", false, "skip the external-tool prerequisite check")
	deployCmd.Flags().BoolVar(&deployCmdConfig.certsOnly, "certs-only", false, "generate certificates and stop")
	deployCmd.Flags().BoolVar(&deployCmdConfig.deployOnly, "deploy-only", false, "deploy without touching certificates")
	deployCmd.Flags().BoolVar(&deployCmdConfig.regenCerts, "regen-certs", false, "regenerate certificates even if a pair exists")
}
