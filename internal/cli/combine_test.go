package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsplit/partsplit/pkg/crypto/shamir"
	"github.com/partsplit/partsplit/pkg/partstore"
)

func TestPartsFileRoundTrip(t *testing.T) {
	secret := []byte("file roundtrip secret")

	scheme, err := shamir.New(nil, shamir.Config{Parts: 5, Threshold: 3})
	require.NoError(t, err)

	parts, err := scheme.Split(secret)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "parts.json")
	require.NoError(t, writePartsFile(path, newPartsDocument(3, 5, parts)))

	doc, err := readPartsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Threshold)
	assert.Equal(t, 5, doc.Total)

	shares, err := doc.toShares()
	require.NoError(t, err)
	rebuilt, err := shamir.MapFromShares(shares)
	require.NoError(t, err)

	reconstructed, err := scheme.Join(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)
}

func TestReadPartsFileMissing(t *testing.T) {
	_, err := readPartsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFromStoreUnsealed(t *testing.T) {
	storePath := t.TempDir()

	secret := []byte("store-backed combine")
	scheme, err := shamir.New(nil, shamir.Config{Parts: 4, Threshold: 2})
	require.NoError(t, err)
	split, err := scheme.Split(secret)
	require.NoError(t, err)

	store, err := partstore.New(storePath)
	require.NoError(t, err)
	require.NoError(t, store.Save(&partstore.PartSet{
		Name:      "combine test",
		Threshold: 2,
		Total:     4,
		Parts:     split,
	}, ""))

	parts, threshold, err := loadFromStore(storePath, "combine test")
	require.NoError(t, err)
	assert.Equal(t, 2, threshold)

	reconstructed, err := scheme.Join(parts)
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)
}

func TestLoadFromStoreMissing(t *testing.T) {
	_, _, err := loadFromStore(t.TempDir(), "no such set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = loadFromStore("", "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no store path")
}
