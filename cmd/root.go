// Root of command-line argument parsing.
// This file was based off the standard cobra template, see
// https://github.com/spf13/cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miniodeploy/miniodeploy/pkg/deploy"
	"github.com/miniodeploy/miniodeploy/pkg/deploymgr"
)

var cfgFile string
var verbose bool

var mgr *deploymgr.DeployManager

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "miniodeploy",
	Short: "Deploy a MinIO object-storage server with self-signed TLS",
	Long: `Automates a single-host MinIO deployment: generates a self-signed
certificate covering the machine's addresses, provisions the data directory,
starts the container stack with docker compose and waits for the server to
answer its liveness endpoint.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		mgrArgs := map[string]interface{}{}
		if cfgFile != "" {
			mgrArgs["config-file"] = cfgFile
		}

		var err error
		mgr, err = deploymgr.NewManager(mgrArgs)
		if err != nil {
			fmt.Printf("Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		if verbose {
			mgr.Logger.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main(). It only needs to happen once to
// the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if mgr == nil || mgr.Logger == nil {
			fmt.Printf("%v\n", err)
		} else {
			mgr.Logger.Error(err)
			if hint := deploy.RemediationOf(err); hint != "" {
				mgr.Logger.Warn("Hint: " + hint)
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "deployment env file (default is ./.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
