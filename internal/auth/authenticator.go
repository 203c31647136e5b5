package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/Laisky/miridev-mcp/library/config"
)

// Identity is a verified user returned by an Authenticator.
type Identity struct {
	Email       string
	UserID      string
	Plan        string
	DisplayName string
}

// Authenticator verifies email/password pairs.
//
// StaticAuthenticator is the built-in table; a remote identity provider can
// be plugged in without touching CredentialStore.
type Authenticator interface {
	Verify(ctx context.Context, email, password string) (*Identity, error)
}

// Account is one entry of the static account table.
type Account struct {
	Password    string
	UserID      string
	Plan        string
	DisplayName string
}

// DevelopmentAccounts is the account table used when none is configured.
func DevelopmentAccounts() map[string]Account {
	return map[string]Account{
		"hongbuzz@gmail.com": {Password: "123", UserID: "user-hongbuzz-001", Plan: "basic", DisplayName: "Hong Buzz"},
		"test@miri.dev":      {Password: "123", UserID: "user-test-001", Plan: "basic", DisplayName: "Test User"},
		"admin@miri.dev":     {Password: "admin123", UserID: "user-admin-001", Plan: "premium", DisplayName: "Admin User"},
	}
}

// StaticAuthenticator verifies against an in-memory account table.
type StaticAuthenticator struct {
	accounts map[string]Account
}

// NewStaticAuthenticator builds an authenticator; emails are matched case-insensitively.
func NewStaticAuthenticator(accounts map[string]Account) *StaticAuthenticator {
	normalized := make(map[string]Account, len(accounts))
	for email, account := range accounts {
		normalized[normalizeEmail(email)] = account
	}

	return &StaticAuthenticator{accounts: normalized}
}

// Verify checks the password of email.
func (a *StaticAuthenticator) Verify(_ context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	account, ok := a.accounts[email]
	if !ok || subtle.ConstantTimeCompare([]byte(account.Password), []byte(password)) != 1 {
		return nil, NewError(ErrCodeInvalidCredentials, "invalid email or password")
	}

	return &Identity{
		Email:       email,
		UserID:      account.UserID,
		Plan:        account.Plan,
		DisplayName: account.DisplayName,
	}, nil
}

// LoadAccounts reads settings.auth.accounts, falling back to DevelopmentAccounts.
func LoadAccounts(get config.Getter) map[string]Account {
	raw := config.Map(get, "settings.auth.accounts")
	if len(raw) == 0 {
		return DevelopmentAccounts()
	}

	accounts := make(map[string]Account, len(raw))
	for email, item := range raw {
		entry := config.Map(func(string) any { return item }, "")
		sub := func(key string) any { return entry[key] }

		accounts[normalizeEmail(email)] = Account{
			Password:    config.String(sub, "password", ""),
			UserID:      config.String(sub, "id", ""),
			Plan:        config.String(sub, "plan", "basic"),
			DisplayName: config.String(sub, "name", email),
		}
	}

	return accounts
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
