package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/miridev-mcp/internal/store"
)

func newTestCredentialStore(t *testing.T, now *time.Time) (*CredentialStore, *store.FileStore) {
	t.Helper()

	records, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	creds, err := NewCredentialStore(records, func() time.Time { return *now }, nil)
	require.NoError(t, err)
	return creds, records
}

func sampleCredential(now time.Time, ttl time.Duration) *Credential {
	return &Credential{
		Email:       "test@miri.dev",
		UserID:      "user-test-001",
		Plan:        "basic",
		DisplayName: "Test User",
		IssuedAt:    now,
		ExpiresAt:   now.Add(ttl),
		Token:       "token",
	}
}

// TestCredentialStoreRoundTrip verifies a saved credential loads back unchanged.
func TestCredentialStoreRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	creds, _ := newTestCredentialStore(t, &now)
	ctx := context.Background()

	want := sampleCredential(now, time.Hour)
	require.NoError(t, creds.Save(ctx, want))

	got, ok := creds.Load(ctx)
	require.True(t, ok)
	require.Equal(t, want.Email, got.Email)
	require.Equal(t, want.UserID, got.UserID)
	require.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
	require.True(t, creds.IsValid(ctx))
}

// TestCredentialStoreSaveOverwrites verifies only the latest credential is kept.
func TestCredentialStoreSaveOverwrites(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	creds, _ := newTestCredentialStore(t, &now)
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, sampleCredential(now, time.Hour)))
	second := sampleCredential(now, time.Hour)
	second.Email = "admin@miri.dev"
	require.NoError(t, creds.Save(ctx, second))

	got, ok := creds.Load(ctx)
	require.True(t, ok)
	require.Equal(t, "admin@miri.dev", got.Email)
}

// TestCredentialStoreExpiredIsRemoved verifies an expired record reads as absent and is deleted.
func TestCredentialStoreExpiredIsRemoved(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	creds, records := newTestCredentialStore(t, &now)
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, sampleCredential(now, time.Minute)))
	now = now.Add(2 * time.Minute)

	_, ok := creds.Load(ctx)
	require.False(t, ok)

	_, err := records.Get(ctx, credentialKey)
	require.True(t, store.IsNotFound(err))
}

// TestCredentialStoreCorruptRecordIsAbsent verifies unparseable records fail open.
func TestCredentialStoreCorruptRecordIsAbsent(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	creds, records := newTestCredentialStore(t, &now)

	require.NoError(t, os.WriteFile(filepath.Join(records.Dir(), credentialKey+".json"), []byte("{not json"), 0o600))

	_, ok := creds.Load(context.Background())
	require.False(t, ok)
}

// TestCredentialStoreClearWithoutRecord verifies clearing an empty store succeeds.
func TestCredentialStoreClearWithoutRecord(t *testing.T) {
	now := time.Now()
	creds, _ := newTestCredentialStore(t, &now)

	require.NoError(t, creds.Clear(context.Background()))
	require.False(t, creds.IsValid(context.Background()))
}

// TestCredentialStoreSaveFailureSurfaces verifies write failures are reported as persistence errors.
func TestCredentialStoreSaveFailureSurfaces(t *testing.T) {
	now := time.Now()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	records, err := store.NewFileStore(filepath.Join(blocker, "nested"))
	require.NoError(t, err)
	creds, err := NewCredentialStore(records, func() time.Time { return now }, nil)
	require.NoError(t, err)

	err = creds.Save(context.Background(), sampleCredential(now, time.Hour))
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodePersistence))
}
