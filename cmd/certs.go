// Handles the "miniodeploy certs" command. This command exists solely to
// contain certificate subcommands (generate, extract).
package cmd

import (
	"github.com/spf13/cobra"
)

// certsCmd represents the certs command
var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Certificate management",
	Long:  `Commands for generating and distributing the deployment's self-signed certificate.`,
}

func init() {
	rootCmd.AddCommand(certsCmd)
}
