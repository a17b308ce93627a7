package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Zone management commands",
	Long:  "List, create, and remove hosted zones, and export zone contents.",
}

var zoneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hosted zones",
	Run: func(cmd *cobra.Command, args []string) {
		runZoneList()
	},
}

var zoneAddCmd = &cobra.Command{
	Use:   "add <domain>",
	Short: "Create a hosted zone",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runZoneAdd(args[0])
	},
}

var zoneRemoveCmd = &cobra.Command{
	Use:   "remove <domain>",
	Short: "Remove a hosted zone",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runZoneRemove(args[0])
	},
}

var zoneAxfrCmd = &cobra.Command{
	Use:   "axfr <domain>",
	Short: "Export a zone-file rendering of a hosted zone",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runZoneAxfr(args[0])
	},
}

func init() {
	rootCmd.AddCommand(zoneCmd)
	zoneCmd.AddCommand(zoneListCmd)
	zoneCmd.AddCommand(zoneAddCmd)
	zoneCmd.AddCommand(zoneRemoveCmd)
	zoneCmd.AddCommand(zoneAxfrCmd)
}

func runZoneList() {
	_, provider := loadProvider()

	zones, err := provider.Zones(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing zones: %v\n", err)
		os.Exit(1)
	}
	if len(zones) == 0 {
		fmt.Println("No zones hosted.")
		return
	}

	title := cases.Title(language.English)
	for _, zone := range zones {
		fmt.Printf("%s\t%s\n", zone.Domain, mutedStyle.Render(title.String(zone.Status)))
	}
}

func runZoneAdd(domain string) {
	cfg, provider := loadProvider()

	err := withZoneLock(domain, func() error {
		return provider.CreateZone(context.Background(), domain, cfg.SOA.Contact)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating zone: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", changeCreateStyle.Render("+"), domain)
}

func runZoneRemove(domain string) {
	_, provider := loadProvider()

	err := withZoneLock(domain, func() error {
		return provider.RemoveZone(context.Background(), domain)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing zone: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", changeDeleteStyle.Render("-"), domain)
}

func runZoneAxfr(domain string) {
	_, provider := loadProvider()

	text, err := provider.ZoneAXFR(context.Background(), domain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting zone: %v\n", err)
		os.Exit(1)
	}
	if text == "" {
		fmt.Fprintf(os.Stderr, "Zone %s is not hosted or has no records.\n", domain)
		os.Exit(1)
	}
	fmt.Print(text)
}
