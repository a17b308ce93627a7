package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-dnsbridge/internal/domain/entity"
)

var (
	recordTTL      int
	recordNewName  string
	recordNewType  string
	recordNewValue string
	recordNewTTL   int
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record management commands",
	Long:  "Add, remove, and update DNS records in a hosted zone.",
}

var recordAddCmd = &cobra.Command{
	Use:   "add <zone> <name> <type> <value>",
	Short: "Add a DNS record",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		runRecordAdd(args[0], args[1], args[2], args[3], recordTTL)
	},
}

var recordRemoveCmd = &cobra.Command{
	Use:   "remove <zone> <name> <type> <value>",
	Short: "Remove a DNS record",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		runRecordRemove(args[0], args[1], args[2], args[3])
	},
}

var recordUpdateCmd = &cobra.Command{
	Use:   "update <zone> <name> <type> <value>",
	Short: "Update a DNS record in place",
	Long:  "Update a record addressed by its current fields. Only the --new-* flags given are changed; everything else is kept.",
	Args:  cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		runRecordUpdate(args[0], args[1], args[2], args[3])
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.AddCommand(recordAddCmd)
	recordAddCmd.Flags().IntVarP(&recordTTL, "ttl", "t", 0, "Record TTL in seconds (0 = provider default)")

	recordCmd.AddCommand(recordRemoveCmd)

	recordCmd.AddCommand(recordUpdateCmd)
	recordUpdateCmd.Flags().StringVar(&recordNewName, "new-name", "", "New record name")
	recordUpdateCmd.Flags().StringVar(&recordNewType, "new-type", "", "New record type")
	recordUpdateCmd.Flags().StringVar(&recordNewValue, "new-value", "", "New record value")
	recordUpdateCmd.Flags().IntVar(&recordNewTTL, "new-ttl", 0, "New record TTL in seconds")
}

func runRecordAdd(zone, name, rtype, value string, ttl int) {
	_, provider := loadProvider()
	record := &entity.Record{
		Zone:      zone,
		Name:      name,
		Type:      entity.RecordType(rtype),
		Parameter: value,
		TTL:       ttl,
	}

	err := withZoneLock(zone, func() error {
		return provider.AddRecord(context.Background(), record)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding record: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", changeCreateStyle.Render("+"), record)
}

func runRecordRemove(zone, name, rtype, value string) {
	_, provider := loadProvider()
	record := &entity.Record{
		Zone:      zone,
		Name:      name,
		Type:      entity.RecordType(rtype),
		Parameter: value,
	}

	err := withZoneLock(zone, func() error {
		return provider.RemoveRecord(context.Background(), record)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error removing record: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s %s\n", changeDeleteStyle.Render("-"), record)
}

func runRecordUpdate(zone, name, rtype, value string) {
	_, provider := loadProvider()
	old := &entity.Record{
		Zone:      zone,
		Name:      name,
		Type:      entity.RecordType(rtype),
		Parameter: value,
	}
	patch := &entity.Record{
		Zone:      zone,
		Name:      recordNewName,
		Type:      entity.RecordType(recordNewType),
		Parameter: recordNewValue,
		TTL:       recordNewTTL,
	}

	err := withZoneLock(zone, func() error {
		return provider.UpdateRecord(context.Background(), old, patch)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating record: %v\n", err)
		os.Exit(1)
	}
	updated := old.Clone()
	updated.Merge(patch)
	fmt.Printf("%s %s\n", changeDeleteStyle.Render("-"), old)
	fmt.Printf("%s %s\n", changeCreateStyle.Render("+"), updated)
}
