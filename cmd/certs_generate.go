// Handles the "miniodeploy certs generate" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var certsGenerateCmdConfig struct {
	force bool
}

var certsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the self-signed certificate pair",
	Long: `Generates a private key and self-signed certificate covering the
loopback addresses, the machine's primary IP and hostname, and any extra
names from MINIO_EXTRA_SANS. An existing pair is reused unless --force is
given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := mgr.EnsureCertificates(certsGenerateCmdConfig.force); err != nil {
			return errors.Wrap(err, "Certificate generation failed")
		}
		return nil
	},
}

func init() {
	certsCmd.AddCommand(certsGenerateCmd)

	certsGenerateCmd.Flags().BoolVar(&certsGenerateCmdConfig.force, "force", false, "replace an existing certificate pair")
}
