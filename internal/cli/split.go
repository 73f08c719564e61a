package cli

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/partsplit/partsplit/internal/validation"
	"github.com/partsplit/partsplit/pkg/config"
	"github.com/partsplit/partsplit/pkg/crypto/shamir"
	"github.com/partsplit/partsplit/pkg/partstore"
	"github.com/partsplit/partsplit/pkg/secure"
)

// NewSplitCommand creates the split command.
func NewSplitCommand(cfg *config.Config) *cobra.Command {
	var (
		parts     int
		threshold int
		useStdin  bool
		hexInput  bool
		outFile   string
		saveName  string
		seal      bool
		storePath string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into identifier-keyed parts",
		Long: `Split a secret into N parts using Shamir's Secret Sharing over GF(256).
Any K (threshold) of the parts reconstruct the secret exactly; fewer than
K reveal nothing about it.

Each part is printed as id:hex, where id is the part identifier in 1..N.
Keep the identifier with the part value - combine needs both.`,
		Example: `  # Split a secret into 5 parts, any 3 of which recover it
  partsplit split --parts 5 --threshold 3

  # Split raw data from stdin and write the parts to a file
  echo -n "secret data" | partsplit split -n 3 -k 2 --stdin --output parts.json

  # Split and keep a sealed copy in the part store
  partsplit split -n 5 -k 3 --save "backup key" --seal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateSplitParams(parts, threshold); err != nil {
				return err
			}

			var secret []byte
			var err error
			if useStdin {
				secret, err = readFromStdin()
			} else {
				secret, err = readSecretInteractive()
			}
			if err != nil {
				return fmt.Errorf("failed to read secret: %w", err)
			}
			defer secure.ClearBytes(&secret)

			if hexInput {
				if err := validation.ValidateHex(string(secret)); err != nil {
					return err
				}
				decoded, err := hex.DecodeString(string(secret))
				if err != nil {
					return fmt.Errorf("failed to decode hex secret: %w", err)
				}
				secure.ClearBytes(&secret)
				secret = decoded
			}

			scheme, err := shamir.New(nil, shamir.Config{
				Parts:     parts,
				Threshold: threshold,
			})
			if err != nil {
				return err
			}

			partMap, err := scheme.Split(secret)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			doc := newPartsDocument(threshold, parts, partMap)

			outputJSON, _ := cmd.Flags().GetBool("json")
			if outputJSON {
				data, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				displayParts(partMap, threshold)
			}

			if outFile != "" {
				if err := writePartsFile(outFile, doc); err != nil {
					return err
				}
				fmt.Printf("Parts written to %s\n", outFile)
			}

			if saveName != "" {
				if err := saveToStore(storePath, saveName, threshold, parts, partMap, seal); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", cfg.Defaults.Parts, "Number of parts to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "k", cfg.Defaults.Threshold, "Number of parts required to reconstruct")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the secret from stdin")
	cmd.Flags().BoolVar(&hexInput, "hex", false, "Treat the secret input as hex")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write parts to a JSON file")
	cmd.Flags().StringVar(&saveName, "save", "", "Save the parts to the part store under this name")
	cmd.Flags().BoolVar(&seal, "seal", false, "Encrypt the stored parts with a passphrase")
	cmd.Flags().StringVar(&storePath, "store", cfg.Storage.StorePath, "Part store directory")

	return cmd
}

func displayParts(parts map[byte][]byte, threshold int) {
	yellow := color.New(color.FgYellow, color.Bold)
	cyan := color.New(color.FgCyan)

	fmt.Println()
	yellow.Printf("Created %d parts, any %d reconstruct the secret:\n", len(parts), threshold)
	fmt.Println()

	for _, share := range shamir.SharesFromMap(parts) {
		cyan.Println("  " + formatPartLine(share))
	}

	fmt.Println()
	fmt.Println("Distribute the parts separately. Anyone holding fewer than the")
	fmt.Println("threshold learns nothing about the secret.")
}

func saveToStore(storePath, name string, threshold, total int, parts map[byte][]byte, seal bool) error {
	if storePath == "" {
		return fmt.Errorf("no store path configured")
	}

	passphrase := ""
	if seal {
		pass, err := readPassphrase("Enter passphrase to seal the stored parts: ")
		if err != nil {
			return err
		}
		if err := validation.ValidatePassphrase(pass); err != nil {
			return err
		}
		if pass == "" {
			return fmt.Errorf("sealing requires a non-empty passphrase")
		}
		passphrase = pass
	}

	store, err := partstore.New(storePath)
	if err != nil {
		return err
	}

	set := &partstore.PartSet{
		Name:      name,
		Threshold: threshold,
		Total:     total,
		Parts:     parts,
	}
	if err := store.Save(set, passphrase); err != nil {
		return fmt.Errorf("failed to save part set: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Saved part set '%s' (id %s)\n", set.Name, set.ID[:8])
	return nil
}
