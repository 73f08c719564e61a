package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultshamir "github.com/hashicorp/vault/shamir"

	"github.com/partsplit/partsplit/pkg/crypto/shamir"
	"github.com/partsplit/partsplit/pkg/partstore"
	"github.com/partsplit/partsplit/pkg/secure"
)

func TestFullWorkflow(t *testing.T) {
	secret, err := secure.Random(32)
	require.NoError(t, err)
	defer secure.Zero(secret)

	scheme, err := shamir.New(nil, shamir.Config{Parts: 5, Threshold: 3})
	require.NoError(t, err)

	parts, err := scheme.Split(secret)
	require.NoError(t, err)
	require.Len(t, parts, 5)

	// Store the parts sealed, read them back, then reconstruct from a
	// threshold subset.
	store, err := partstore.New(t.TempDir())
	require.NoError(t, err)

	set := &partstore.PartSet{
		Name:      "integration",
		Threshold: scheme.Threshold(),
		Total:     scheme.Parts(),
		Parts:     parts,
	}
	require.NoError(t, store.Save(set, "workflow passphrase"))

	loaded, err := store.Load(set.ID, "workflow passphrase")
	require.NoError(t, err)
	require.Equal(t, parts, loaded.Parts)

	subset := map[byte][]byte{
		2: loaded.Parts[2],
		4: loaded.Parts[4],
		5: loaded.Parts[5],
	}
	reconstructed, err := scheme.Join(subset)
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)
}

func TestDifferentPartCombinations(t *testing.T) {
	secret := []byte("test secret for multiple combinations")

	scheme, err := shamir.New(nil, shamir.Config{Parts: 6, Threshold: 3})
	require.NoError(t, err)

	parts, err := scheme.Split(secret)
	require.NoError(t, err)

	combinations := [][]byte{
		{1, 2, 3},
		{4, 5, 6},
		{1, 3, 5},
		{2, 4, 6},
		{1, 2, 3, 4, 5, 6},
	}

	for _, ids := range combinations {
		subset := make(map[byte][]byte, len(ids))
		for _, id := range ids {
			subset[id] = parts[id]
		}

		reconstructed, err := scheme.Join(subset)
		require.NoError(t, err)
		assert.Equal(t, secret, reconstructed, "combination %v", ids)
	}
}

func TestShareAdaptersAcrossFileFormat(t *testing.T) {
	secret := []byte("adapters and maps")

	scheme, err := shamir.New(nil, shamir.Config{Parts: 4, Threshold: 2})
	require.NoError(t, err)

	parts, err := scheme.Split(secret)
	require.NoError(t, err)

	shares := shamir.SharesFromMap(parts)
	rebuilt, err := shamir.MapFromShares(shares[:2])
	require.NoError(t, err)

	reconstructed, err := scheme.Join(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)
}

func TestVaultLegacyRoundTrip(t *testing.T) {
	secret := []byte("vault compatible secret")

	shares, err := vaultshamir.Split(secret, 5, 3)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	reconstructed, err := vaultshamir.Combine(shares[1:4])
	require.NoError(t, err)
	assert.Equal(t, secret, reconstructed)

	// Vault shares append the evaluation point instead of prefixing an
	// identifier, so they are one byte longer than the secret.
	for _, share := range shares {
		assert.Len(t, share, len(secret)+1)
	}
}
