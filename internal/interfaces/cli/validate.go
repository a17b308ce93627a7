package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured API credentials",
	Long:  "Check the API token shape and prove it against the provider's account endpoint.",
	Run: func(cmd *cobra.Command, args []string) {
		runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate() {
	_, provider := loadProvider()

	if err := provider.ValidateCredentials(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Credential validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Credentials OK.")
}
