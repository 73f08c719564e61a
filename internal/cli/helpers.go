package cli

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/partsplit/partsplit/internal/validation"
	"github.com/partsplit/partsplit/pkg/crypto/shamir"
)

// readPassphrase reads a passphrase from the terminal without echo.
func readPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		passBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pass), nil
}

// readSecretInteractive reads a secret from the terminal without echo.
func readSecretInteractive() ([]byte, error) {
	fmt.Print("Enter your secret: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return nil, err
		}
		if len(secret) == 0 {
			return nil, fmt.Errorf("secret cannot be empty")
		}
		return secret, nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}

	secret := []byte(strings.TrimSpace(input))
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret cannot be empty")
	}
	return secret, nil
}

// readFromStdin reads the whole of stdin, trimming a trailing newline.
func readFromStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	data = []byte(strings.TrimRight(string(data), "\r\n"))
	if len(data) == 0 {
		return nil, fmt.Errorf("no data on stdin")
	}
	return data, nil
}

// formatPartLine renders a share as "id:hex", the interchange format the
// combine command reads back.
func formatPartLine(share shamir.Share) string {
	return fmt.Sprintf("%d:%s", share.Index, hex.EncodeToString(share.Data))
}

// parsePartLine parses an "id:hex" line into a share.
func parsePartLine(line string) (shamir.Share, error) {
	line = strings.TrimSpace(line)

	id, value, found := strings.Cut(line, ":")
	if !found {
		return shamir.Share{}, fmt.Errorf("invalid part %q, expected format: id:hex", line)
	}

	index, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return shamir.Share{}, fmt.Errorf("invalid part identifier %q", id)
	}
	if err := validation.ValidatePartID(index); err != nil {
		return shamir.Share{}, err
	}

	value = strings.TrimSpace(value)
	if err := validation.ValidateHex(value); err != nil {
		return shamir.Share{}, fmt.Errorf("invalid part value: %w", err)
	}

	data, err := hex.DecodeString(value)
	if err != nil {
		return shamir.Share{}, fmt.Errorf("failed to decode part value: %w", err)
	}

	return shamir.Share{Index: byte(index), Data: data}, nil
}

// collectPartsInteractive reads "id:hex" lines from stdin until a blank
// line.
func collectPartsInteractive() ([]shamir.Share, error) {
	fmt.Println("Enter parts one per line as id:hex, finish with an empty line:")

	var shares []shamir.Share
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		share, err := parsePartLine(line)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return shares, nil
}

// partsDocument is the JSON file format used by --output and --input.
type partsDocument struct {
	Threshold int               `json:"threshold"`
	Total     int               `json:"total"`
	Parts     map[string]string `json:"parts"`
}

func newPartsDocument(threshold, total int, parts map[byte][]byte) partsDocument {
	doc := partsDocument{
		Threshold: threshold,
		Total:     total,
		Parts:     make(map[string]string, len(parts)),
	}
	for id, data := range parts {
		doc.Parts[strconv.Itoa(int(id))] = hex.EncodeToString(data)
	}
	return doc
}

func (d partsDocument) toShares() ([]shamir.Share, error) {
	shares := make([]shamir.Share, 0, len(d.Parts))
	for id, value := range d.Parts {
		share, err := parsePartLine(id + ":" + value)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}
	return shares, nil
}

func writePartsFile(path string, doc partsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parts: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write parts file: %w", err)
	}
	return nil
}

func readPartsFile(path string) (partsDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return partsDocument{}, fmt.Errorf("failed to read parts file: %w", err)
	}

	var doc partsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return partsDocument{}, fmt.Errorf("failed to parse parts file: %w", err)
	}
	return doc, nil
}
