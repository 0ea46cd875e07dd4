// Handles the "miniodeploy verify" command
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Inspect the running deployment",
	Long: `Checks that the container is running, that the liveness endpoint
answers and that the S3 API accepts the configured credentials, then prints
the deployment status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mgr.Verify(); err != nil {
			return errors.Wrap(err, "Verification failed")
		}
		return mgr.StatusReport(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
