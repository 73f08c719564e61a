package partstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParts() map[byte][]byte {
	return map[byte][]byte{
		1: {0xde, 0xad},
		2: {0xbe, 0xef},
		3: {0xca, 0xfe},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	set := &PartSet{
		Name:      "backup key",
		Threshold: 2,
		Total:     3,
		Parts:     testParts(),
	}

	require.NoError(t, store.Save(set, ""))
	assert.NotEmpty(t, set.ID)
	assert.False(t, set.Created.IsZero())
	assert.NotEmpty(t, set.Checksum)

	loaded, err := store.Load(set.ID, "")
	require.NoError(t, err)
	assert.Equal(t, set.Name, loaded.Name)
	assert.Equal(t, set.Threshold, loaded.Threshold)
	assert.Equal(t, set.Total, loaded.Total)
	assert.Equal(t, testParts(), loaded.Parts)
	assert.False(t, loaded.IsSealed())

	// Lookup by name works too.
	byName, err := store.Load("backup key", "")
	require.NoError(t, err)
	assert.Equal(t, set.ID, byName.ID)
}

func TestSealedSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	set := &PartSet{
		Name:      "sealed set",
		Threshold: 2,
		Total:     3,
		Parts:     testParts(),
	}

	require.NoError(t, store.Save(set, "correct horse"))
	assert.True(t, set.IsSealed())
	assert.Nil(t, set.Parts, "plaintext parts must not remain after sealing")

	_, err = store.Load(set.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passphrase required")

	_, err = store.Load(set.ID, "wrong passphrase")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decryption failed")

	loaded, err := store.Load(set.ID, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, testParts(), loaded.Parts)
}

func TestListOrdering(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	older := &PartSet{
		Name:      "older",
		Threshold: 2,
		Total:     2,
		Created:   time.Now().Add(-time.Hour),
		Parts:     map[byte][]byte{1: {1}, 2: {2}},
	}
	newer := &PartSet{
		Name:      "newer",
		Threshold: 2,
		Total:     2,
		Parts:     map[byte][]byte{1: {3}, 2: {4}},
	}

	require.NoError(t, store.Save(older, ""))
	require.NoError(t, store.Save(newer, ""))

	sets, err := store.List()
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "newer", sets[0].Name)
	assert.Equal(t, "older", sets[1].Name)
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	set := &PartSet{
		Name:      "short lived",
		Threshold: 2,
		Total:     2,
		Parts:     map[byte][]byte{1: {1}, 2: {2}},
	}
	require.NoError(t, store.Save(set, ""))

	require.NoError(t, store.Delete(set.ID))

	_, err = store.Load(set.ID, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = store.Delete("no such id")
	assert.Error(t, err)
}

func TestSaveRequiresName(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	err = store.Save(&PartSet{Parts: testParts()}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestSealRoundTrip(t *testing.T) {
	plain := []byte("the quick brown fox")

	sealed, err := seal(plain, "pass")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), string(plain))

	opened, err := open(sealed, "pass")
	require.NoError(t, err)
	assert.Equal(t, plain, opened)

	_, err = open(sealed[:10], "pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}
