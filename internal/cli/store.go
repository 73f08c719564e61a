package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/partsplit/partsplit/pkg/config"
	"github.com/partsplit/partsplit/pkg/crypto/shamir"
	"github.com/partsplit/partsplit/pkg/partstore"
)

// NewStoreCommand creates the store command group.
func NewStoreCommand(cfg *config.Config) *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage stored part sets",
		Long: `Manage part sets kept in the local part store.

Part sets are written by 'split --save'. Sealed sets keep their part
values encrypted with a passphrase; metadata stays readable.`,
	}

	cmd.PersistentFlags().StringVar(&storePath, "store", cfg.Storage.StorePath, "Part store directory")

	cmd.AddCommand(
		newStoreListCommand(&storePath),
		newStoreShowCommand(&storePath),
		newStoreDeleteCommand(&storePath),
	)

	return cmd
}

func openStore(storePath string) (*partstore.Store, error) {
	if storePath == "" {
		return nil, fmt.Errorf("no store path configured")
	}
	return partstore.New(storePath)
}

func newStoreListCommand(storePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored part sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*storePath)
			if err != nil {
				return err
			}

			sets, err := store.List()
			if err != nil {
				return err
			}
			if len(sets) == 0 {
				fmt.Println("No part sets stored.")
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			for _, set := range sets {
				sealed := ""
				if set.IsSealed() {
					sealed = " (sealed)"
				}
				cyan.Printf("%s  %s\n", set.ID[:8], set.Name)
				fmt.Printf("         %d of %d parts, created %s%s\n",
					set.Threshold, set.Total, set.Created.Format("2006-01-02 15:04"), sealed)
			}
			return nil
		},
	}
}

func newStoreShowCommand(storePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name-or-id>",
		Short: "Show the parts of a stored set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*storePath)
			if err != nil {
				return err
			}

			info, err := store.Info(args[0])
			if err != nil {
				return err
			}

			passphrase := ""
			if info.IsSealed() {
				passphrase, err = readPassphrase("Enter passphrase to unseal the part set: ")
				if err != nil {
					return err
				}
			}

			set, err := store.Load(args[0], passphrase)
			if err != nil {
				return err
			}

			yellow := color.New(color.FgYellow, color.Bold)
			cyan := color.New(color.FgCyan)

			yellow.Printf("%s: %d of %d parts\n", set.Name, set.Threshold, set.Total)
			for _, share := range shamir.SharesFromMap(set.Parts) {
				cyan.Println("  " + formatPartLine(share))
			}
			return nil
		},
	}
}

func newStoreDeleteCommand(storePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete a stored part set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*storePath)
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted part set '%s'\n", args[0])
			return nil
		},
	}
}
