package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now *time.Time) (*Service, *CredentialStore) {
	t.Helper()

	creds, _ := newTestCredentialStore(t, now)
	svc, err := NewService(creds, NewStaticAuthenticator(DevelopmentAccounts()), Settings{
		TokenTTL:    DefaultTokenTTL,
		TokenSecret: "test-secret",
	}, func() time.Time { return *now }, nil)
	require.NoError(t, err)
	return svc, creds
}

// TestServiceLoginPersistsCredential verifies a successful login stores a signed credential.
func TestServiceLoginPersistsCredential(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, creds := newTestService(t, &now)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginRequest{Email: "Admin@Miri.dev", Password: "admin123"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.False(t, result.AlreadySignedIn)
	require.Equal(t, "admin@miri.dev", result.Credential.Email)
	require.Equal(t, "premium", result.Credential.Plan)
	require.True(t, result.Credential.ExpiresAt.Equal(now.Add(DefaultTokenTTL)))

	stored, ok := creds.Load(ctx)
	require.True(t, ok)
	require.Equal(t, result.Credential.Token, stored.Token)

	claims, err := svc.tokens.parse(stored.Token, now)
	require.NoError(t, err)
	require.Equal(t, "user-admin-001", claims.Subject)
	require.Equal(t, "premium", claims.Plan)
}

// TestServiceLoginUnknownEmail verifies rejected logins persist nothing.
func TestServiceLoginUnknownEmail(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, creds := newTestService(t, &now)
	ctx := context.Background()

	result, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "123"})
	require.NoError(t, err)
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)
	require.False(t, creds.IsValid(ctx))
}

// TestServiceLoginAlreadySignedIn verifies a valid credential short-circuits a non-forced login.
func TestServiceLoginAlreadySignedIn(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "test@miri.dev", Password: "123"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, LoginRequest{})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.AlreadySignedIn)
	require.Equal(t, "test@miri.dev", result.Credential.Email)
}

// TestServiceLoginForceRequiresCredentials verifies a forced login needs email and password.
func TestServiceLoginForceRequiresCredentials(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "test@miri.dev", Password: "123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Force: true})
	require.Error(t, err)
	require.True(t, IsCode(err, ErrCodeCredentialsRequired))

	result, err := svc.Login(ctx, LoginRequest{Force: true, Email: "admin@miri.dev", Password: "admin123"})
	require.NoError(t, err)
	require.False(t, result.AlreadySignedIn)
	require.Equal(t, "admin@miri.dev", result.Credential.Email)
}

// TestServiceLogoutAndStatus verifies status reporting across login and logout.
func TestServiceLogoutAndStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, &now)
	ctx := context.Background()

	require.False(t, svc.Status(ctx).Authenticated)
	require.Contains(t, svc.Status(ctx).Describe(), "Not signed in")

	_, err := svc.Login(ctx, LoginRequest{Email: "test@miri.dev", Password: "123"})
	require.NoError(t, err)

	now = now.Add(10 * 24 * time.Hour)
	st := svc.Status(ctx)
	require.True(t, st.Authenticated)
	require.Equal(t, 20, st.RemainingDays)
	require.Contains(t, st.Describe(), "test@miri.dev")

	require.NoError(t, svc.Logout(ctx))
	require.False(t, svc.Status(ctx).Authenticated)
}

// TestLoadAccountsFromConfig verifies configured accounts replace the development table.
func TestLoadAccountsFromConfig(t *testing.T) {
	values := map[string]any{
		"settings.auth.accounts": map[string]any{
			"ops@example.com": map[string]any{
				"password": "pw",
				"id":       "ops-1",
				"plan":     "premium",
			},
		},
	}
	accounts := LoadAccounts(func(key string) any { return values[key] })
	require.Len(t, accounts, 1)
	require.Equal(t, "pw", accounts["ops@example.com"].Password)
	require.Equal(t, "premium", accounts["ops@example.com"].Plan)
	require.Equal(t, "ops@example.com", accounts["ops@example.com"].DisplayName)

	authn := NewStaticAuthenticator(accounts)
	_, err := authn.Verify(context.Background(), "ops@example.com", "bad")
	require.True(t, IsCode(err, ErrCodeInvalidCredentials))
}

// TestStaticAuthenticatorComparesPasswordVerbatim verifies leading and trailing spaces are significant.
func TestStaticAuthenticatorComparesPasswordVerbatim(t *testing.T) {
	authn := NewStaticAuthenticator(map[string]Account{
		"spaced@miri.dev": {Password: "  secret  ", UserID: "user-spaced", Plan: "basic"},
	})
	ctx := context.Background()

	identity, err := authn.Verify(ctx, "spaced@miri.dev", "  secret  ")
	require.NoError(t, err)
	require.Equal(t, "user-spaced", identity.UserID)

	_, err = authn.Verify(ctx, "spaced@miri.dev", "secret")
	require.True(t, IsCode(err, ErrCodeInvalidCredentials))
}
