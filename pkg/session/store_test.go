package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

func TestFileStore_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	want := &v1.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
		ExpiresAt:    1700000000,
	}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore_ClearMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	assert.NoError(t, store.Clear())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestKeyringStore_Roundtrip(t *testing.T) {
	keyring.MockInit()

	store := NewKeyringStore()
	t.Cleanup(func() { _ = store.Clear() })

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	want := &v1.Session{AccessToken: "access", RefreshToken: "refresh"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	// Clearing twice stays quiet.
	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFallbackStore_UsesSecondaryWhenPrimaryEmpty(t *testing.T) {
	keyring.MockInit()

	primary := NewKeyringStore()
	t.Cleanup(func() { _ = primary.Clear() })

	secondary := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	store := &fallbackStore{primary: primary, secondary: secondary}

	want := &v1.Session{AccessToken: "file-access"}
	require.NoError(t, secondary.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFallbackStore_PrimaryWins(t *testing.T) {
	keyring.MockInit()

	primary := NewKeyringStore()
	t.Cleanup(func() { _ = primary.Clear() })

	secondary := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	store := &fallbackStore{primary: primary, secondary: secondary}

	require.NoError(t, store.Save(&v1.Session{AccessToken: "keyring-access"}))
	require.NoError(t, secondary.Save(&v1.Session{AccessToken: "file-access"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "keyring-access", got.AccessToken)

	require.NoError(t, store.Clear())

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
