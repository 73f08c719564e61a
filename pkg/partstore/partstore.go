// Package partstore provides on-disk storage for named sets of secret
// parts produced by a split.
package partstore

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/partsplit/partsplit/pkg/secure"
)

const (
	saltSize = 32
	keySize  = 32

	// argon2id parameters for the sealing key
	kdfTime    = 3
	kdfMemory  = 64 * 1024
	kdfThreads = 4
)

// PartSet is one stored split: its metadata plus the identifier-keyed part
// values. When sealed with a passphrase, Parts is empty and Sealed carries
// the encrypted part map instead.
type PartSet struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Created   time.Time       `json:"created"`
	Threshold int             `json:"threshold"`
	Total     int             `json:"total"`
	Parts     map[byte][]byte `json:"parts,omitempty"`
	Sealed    []byte          `json:"sealed,omitempty"`
	Checksum  []byte          `json:"checksum_sha256"`
}

// IsSealed reports whether the part values require a passphrase to read.
func (ps *PartSet) IsSealed() bool {
	return len(ps.Sealed) > 0
}

// Store manages part sets as JSON files in a single directory.
type Store struct {
	path string
}

// New opens the store at path, creating the directory if needed.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Save persists the part set. A non-empty passphrase seals the part values
// with argon2id + chacha20poly1305 before writing; metadata stays readable
// either way.
func (s *Store) Save(set *PartSet, passphrase string) error {
	if set.Name == "" {
		return fmt.Errorf("part set name cannot be empty")
	}
	if set.ID == "" {
		id, err := secure.Random(16)
		if err != nil {
			return err
		}
		set.ID = fmt.Sprintf("%x", id)
	}
	if set.Created.IsZero() {
		set.Created = time.Now()
	}

	if passphrase != "" {
		plain, err := json.Marshal(set.Parts)
		if err != nil {
			return fmt.Errorf("failed to marshal parts: %w", err)
		}
		sealed, err := seal(plain, passphrase)
		secure.Zero(plain)
		if err != nil {
			return err
		}
		set.Sealed = sealed
		set.Parts = nil
	}

	if err := calculateChecksum(set); err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal part set: %w", err)
	}

	return os.WriteFile(s.filename(set), data, 0600)
}

// Load retrieves a part set by ID or name and verifies its checksum. Sealed sets
// need the passphrase that sealed them; for unsealed sets it is ignored.
func (s *Store) Load(id, passphrase string) (*PartSet, error) {
	set, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if set.IsSealed() {
		if passphrase == "" {
			return nil, fmt.Errorf("part set '%s' is sealed, passphrase required", set.Name)
		}
		plain, err := open(set.Sealed, passphrase)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(plain, &set.Parts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal parts: %w", err)
		}
		secure.Zero(plain)
	}

	return set, nil
}

// List returns the metadata of all stored part sets, newest first. Sealed
// part values are left sealed.
func (s *Store) List() ([]*PartSet, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var sets []*PartSet
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		set, err := s.readFile(filepath.Join(s.path, entry.Name()))
		if err != nil {
			// Skip files that are not part sets.
			continue
		}
		sets = append(sets, set)
	}

	sort.Slice(sets, func(i, j int) bool {
		return sets[i].Created.After(sets[j].Created)
	})

	return sets, nil
}

// Info returns a part set's metadata by ID or name without unsealing its
// part values.
func (s *Store) Info(id string) (*PartSet, error) {
	return s.find(id)
}

// Delete removes a part set by ID or name.
func (s *Store) Delete(id string) error {
	set, err := s.find(id)
	if err != nil {
		return err
	}
	if err := os.Remove(s.filename(set)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Store) find(id string) (*PartSet, error) {
	sets, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		if set.ID == id || set.Name == id {
			return set, nil
		}
	}
	return nil, fmt.Errorf("part set '%s' not found", id)
}

func (s *Store) readFile(filename string) (*PartSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var set PartSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	if set.ID == "" {
		return nil, fmt.Errorf("not a part set file")
	}
	if err := verifyChecksum(&set); err != nil {
		return nil, err
	}

	return &set, nil
}

func (s *Store) filename(set *PartSet) string {
	safeName := strings.ReplaceAll(set.Name, " ", "_")
	safeName = strings.ReplaceAll(safeName, "/", "_")
	if len(safeName) > 50 {
		safeName = safeName[:50]
	}
	return filepath.Join(s.path, fmt.Sprintf("%s_%s.json", safeName, set.ID[:8]))
}

func calculateChecksum(set *PartSet) error {
	temp := *set
	temp.Checksum = nil

	data, err := json.Marshal(temp)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(data)
	set.Checksum = hash[:]
	return nil
}

func verifyChecksum(set *PartSet) error {
	if len(set.Checksum) == 0 {
		return nil
	}

	original := make([]byte, len(set.Checksum))
	copy(original, set.Checksum)

	if err := calculateChecksum(set); err != nil {
		return err
	}
	if !secure.ConstantTimeCompare(original, set.Checksum) {
		return fmt.Errorf("checksum mismatch - data may be corrupted")
	}
	return nil
}

// seal encrypts data with a key derived from the passphrase. The output is
// salt || nonce || ciphertext.
func seal(data []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(passphrase), salt, kdfTime, kdfMemory, kdfThreads, keySize)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, data, nil)

	result := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, sealed...)
	return result, nil
}

func open(data []byte, passphrase string) ([]byte, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSize {
		return nil, fmt.Errorf("sealed data too short")
	}

	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+chacha20poly1305.NonceSize]
	sealed := data[saltSize+chacha20poly1305.NonceSize:]

	key := argon2.IDKey([]byte(passphrase), salt, kdfTime, kdfMemory, kdfThreads, keySize)
	defer secure.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plain, nil
}
