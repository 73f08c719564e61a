package cli

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	vaultshamir "github.com/hashicorp/vault/shamir"
	"github.com/spf13/cobra"

	"github.com/partsplit/partsplit/internal/validation"
	"github.com/partsplit/partsplit/pkg/secure"
)

// NewLegacyCommand creates a command group for HashiCorp Vault-format
// shares.
func NewLegacyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Vault-format share operations",
		Long: `Split and combine shares in HashiCorp Vault's Shamir format.

Vault shares embed their evaluation point in the last byte instead of
carrying a separate identifier, so they are not interchangeable with the
id:hex parts produced by the regular split command. Use these commands
only to work with shares produced by Vault or Vault-compatible tools.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			yellow := color.New(color.FgYellow, color.Bold)
			yellow.Println("Using Vault-compatible share format")
			fmt.Println()
		},
	}

	cmd.AddCommand(
		newLegacySplitCommand(),
		newLegacyCombineCommand(),
	)

	return cmd
}

func newLegacySplitCommand() *cobra.Command {
	var (
		parts     int
		threshold int
		useStdin  bool
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret into Vault-format shares",
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

			shares, err := vaultshamir.Split(secret, parts, threshold)
			if err != nil {
				return fmt.Errorf("failed to split secret: %w", err)
			}

			cyan := color.New(color.FgCyan)
			fmt.Println()
			for _, share := range shares {
				cyan.Println("  " + hex.EncodeToString(share))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&parts, "parts", "n", 3, "Number of shares to create")
	cmd.Flags().IntVarP(&threshold, "threshold", "k", 2, "Number of shares required to reconstruct")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "Read the secret from stdin")

	return cmd
}

func newLegacyCombineCommand() *cobra.Command {
	var outputHex bool

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Combine Vault-format shares",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Enter shares one per line as hex, finish with an empty line:")

			var shares [][]byte
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					break
				}
				if err := validation.ValidateHex(line); err != nil {
					return fmt.Errorf("invalid share: %w", err)
				}
				share, err := hex.DecodeString(line)
				if err != nil {
					return fmt.Errorf("failed to decode share: %w", err)
				}
				shares = append(shares, share)
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			secret, err := vaultshamir.Combine(shares)
			if err != nil {
				return fmt.Errorf("failed to combine shares: %w", err)
			}
			defer secure.ClearBytes(&secret)

			green := color.New(color.FgGreen, color.Bold)
			fmt.Println()
			green.Println("Recovered secret:")
			if outputHex {
				fmt.Printf("%x\n", secret)
			} else {
				fmt.Printf("%s\n", secret)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputHex, "hex", false, "Output the secret as hex")

	return cmd
}
