// Handles the "miniodeploy status" command
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/miniodeploy/miniodeploy/pkg/compose"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the deployment's access information",
	Long: `Prints access URLs, credentials and management hints without
polling the server. Use "verify" for an end-to-end check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := mgr.ComposeDriver()
		if err != nil {
			return errors.Wrap(err, "Status command failed")
		}
		running, err := driver.Running(compose.ServiceName)
		if err != nil {
			return errors.Wrap(err, "Status command failed")
		}
		if !running {
			mgr.Logger.Warn("The " + compose.ServiceName + " service is not running")
		}
		return mgr.StatusReport(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
