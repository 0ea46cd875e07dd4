// Handles the "miniodeploy certs extract" command
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/miniodeploy/miniodeploy/pkg/certs"
)

var certsExtractCmdConfig struct {
	host   string
	port   int
	output string
	trust  bool
}

var certsExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Fetch the certificate a running deployment presents",
	Long: `Connects to the deployment, downloads the certificate it serves and
writes it as PEM. With --trust the certificate is also installed into this
machine's trust store (requires root).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := certsExtractCmdConfig
		if err := certs.Extract(cfg.host, cfg.port, cfg.output); err != nil {
			return errors.Wrap(err, "Certificate extraction failed")
		}
		mgr.Logger.Info("Wrote certificate to " + cfg.output)

		if cfg.trust {
			if err := certs.TrustLocally(cfg.output); err != nil {
				return errors.Wrap(err, "Failed to trust the certificate")
			}
			mgr.Logger.Info("Certificate installed into the system trust store")
		}
		return nil
	},
}

func init() {
	certsCmd.AddCommand(certsExtractCmd)

	certsExtractCmd.Flags().StringVar(&certsExtractCmdConfig.host, "host", "localhost", "host to fetch the certificate from")
	certsExtractCmd.Flags().IntVar(&certsExtractCmdConfig.port, "port", 9000, "TLS port to connect to")
	certsExtractCmd.Flags().StringVar(&certsExtractCmdConfig.output, "output", "minio.crt", "output path for the PEM certificate")
	certsExtractCmd.Flags().BoolVar(&certsExtractCmdConfig.trust, "trust", false, "install the certificate into the system trust store")
}
