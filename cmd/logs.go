// Handles the "miniodeploy logs" command
package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logsCmdConfig struct {
	tail int
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent service logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, err := mgr.ComposeDriver()
		if err != nil {
			return errors.Wrap(err, "Logs command failed")
		}
		return errors.Wrap(driver.Logs(os.Stdout, logsCmdConfig.tail), "Logs command failed")
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVar(&logsCmdConfig.tail, "tail", 100, "number of log lines to show")
}
