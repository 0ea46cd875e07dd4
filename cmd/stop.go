// Handles the "miniodeploy stop" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the storage stack",
	Long:  `Stops and removes the containers. Object data and certificates stay on disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mgr.StopStack(); err != nil {
			return errors.Wrap(err, "Stop command failed")
		}
		mgr.Logger.Info("Stack stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
