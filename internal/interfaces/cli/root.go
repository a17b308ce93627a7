package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-dnsbridge/internal/config"
	"github.com/lite-lake/infra-dnsbridge/internal/provider/linode"
)

var (
	ConfigPath  string
	ShowVersion bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "dnsbridge",
	Short: "Panel DNS adapter for the Linode Domains API",
	Long:  "Dnsbridge reconciles a hosting panel's DNS records against the Linode Domains API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if ShowVersion {
			fmt.Println(Version)
			os.Exit(0)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", "dnsbridge.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&ShowVersion, "version", "v", false, "Show version information")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadProvider() (*config.Config, *linode.Provider) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg, linode.NewFromConfig(cfg)
}
