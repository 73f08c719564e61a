package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/partsplit/partsplit/pkg/config"
	"github.com/partsplit/partsplit/pkg/crypto/shamir"
	"github.com/partsplit/partsplit/pkg/secure"
)

// NewCombineCommand creates the combine command.
func NewCombineCommand(cfg *config.Config) *cobra.Command {
	var (
		threshold int
		inputFile string
		fromStore string
		storePath string
		outputHex bool
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine parts to recover the secret",
		Long: `Combine identifier-keyed parts to recover the original secret.

At least the threshold number of parts from the same split is required.
The parts carry no integrity information: forged or tampered parts
produce a wrong secret without any error.`,
		Example: `  # Combine parts entered interactively as id:hex lines
  partsplit combine --threshold 3

  # Combine parts from a file written by split --output
  partsplit combine --input parts.json

  # Combine a set kept in the part store
  partsplit combine --from-store "backup key"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				parts map[byte][]byte
				err   error
			)

			switch {
			case fromStore != "":
				parts, threshold, err = loadFromStore(storePath, fromStore)
			case inputFile != "":
				var doc partsDocument
				doc, err = readPartsFile(inputFile)
				if err == nil {
					if doc.Threshold > 0 {
						threshold = doc.Threshold
					}
					var shares []shamir.Share
					shares, err = doc.toShares()
					if err == nil {
						parts, err = shamir.MapFromShares(shares)
					}
				}
			default:
				var shares []shamir.Share
				shares, err = collectPartsInteractive()
				if err == nil {
					parts, err = shamir.MapFromShares(shares)
				}
			}
			if err != nil {
				return err
			}

			// Joining only needs the threshold; the parts count of the
			// original split is unknown here, so use the field maximum.
			scheme, err := shamir.New(nil, shamir.Config{
				Parts:     255,
				Threshold: threshold,
			})
			if err != nil {
				return err
			}

			secret, err := scheme.Join(parts)
			if err != nil {
				return fmt.Errorf("failed to combine parts: %w", err)
			}
			defer secure.ClearBytes(&secret)

			green := color.New(color.FgGreen, color.Bold)
			cyan := color.New(color.FgCyan, color.Bold)

			fmt.Println()
			green.Println("Recovered secret:")
			if outputHex {
				cyan.Printf("%x\n", secret)
			} else {
				cyan.Printf("%s\n", secret)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "k", cfg.Defaults.Threshold, "Number of parts required to reconstruct")
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "File containing parts (written by split --output)")
	cmd.Flags().StringVar(&fromStore, "from-store", "", "Name or ID of a stored part set")
	cmd.Flags().StringVar(&storePath, "store", cfg.Storage.StorePath, "Part store directory")
	cmd.Flags().BoolVar(&outputHex, "hex", false, "Output the secret as hex")

	return cmd
}

func loadFromStore(storePath, name string) (map[byte][]byte, int, error) {
	store, err := openStore(storePath)
	if err != nil {
		return nil, 0, err
	}

	// Peek at the metadata first so only sealed sets prompt for a
	// passphrase.
	info, err := store.Info(name)
	if err != nil {
		return nil, 0, err
	}

	passphrase := ""
	if info.IsSealed() {
		passphrase, err = readPassphrase("Enter passphrase to unseal the part set: ")
		if err != nil {
			return nil, 0, err
		}
	}

	set, err := store.Load(name, passphrase)
	if err != nil {
		return nil, 0, err
	}

	return set.Parts, set.Threshold, nil
}
