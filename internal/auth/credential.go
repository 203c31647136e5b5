// Package auth keeps the single signed-in miri.dev identity.
package auth

import (
	"context"
	"encoding/json"
	"time"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/internal/store"
	"github.com/Laisky/miridev-mcp/library/log"
)

// credentialKey is the record key of the persisted credential.
const credentialKey = "auth"

// Clock returns the current time.
type Clock func() time.Time

// Credential is the persisted signed-in identity.
type Credential struct {
	Email       string    `json:"email"`
	UserID      string    `json:"userId"`
	Plan        string    `json:"plan"`
	DisplayName string    `json:"displayName"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Token       string    `json:"token"`
}

// Expired reports whether the credential is no longer valid at now.
func (c *Credential) Expired(now time.Time) bool {
	return c == nil || !now.Before(c.ExpiresAt)
}

// CredentialStore persists at most one Credential.
type CredentialStore struct {
	records store.RecordStore
	clock   Clock
	logger  logSDK.Logger
}

// NewCredentialStore constructs a credential store over records.
func NewCredentialStore(records store.RecordStore, clock Clock, logger logSDK.Logger) (*CredentialStore, error) {
	if records == nil {
		return nil, errors.New("record store is required")
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = log.Logger.Named("credential_store")
	}

	return &CredentialStore{records: records, clock: clock, logger: logger}, nil
}

// Save persists cred, replacing any previous credential.
func (s *CredentialStore) Save(ctx context.Context, cred *Credential) error {
	if cred == nil {
		return errors.New("credential is required")
	}

	payload, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal credential")
	}

	ttl := cred.ExpiresAt.Sub(s.clock())
	if err := s.records.Put(ctx, credentialKey, payload, ttl); err != nil {
		return NewError(ErrCodePersistence, "save credential: "+err.Error())
	}

	return nil
}

// Load returns the stored credential, or false when none is usable.
//
// Read failures and unparseable records count as absent. An expired
// credential is deleted before reporting absence.
func (s *CredentialStore) Load(ctx context.Context) (*Credential, bool) {
	payload, err := s.records.Get(ctx, credentialKey)
	if err != nil {
		if !store.IsNotFound(err) {
			s.logger.Warn("read credential", zap.Error(err))
		}
		return nil, false
	}

	cred := new(Credential)
	if err := json.Unmarshal(payload, cred); err != nil {
		s.logger.Warn("parse credential", zap.Error(err))
		return nil, false
	}

	if cred.Expired(s.clock()) {
		s.logger.Info("credential expired, removing", zap.Time("expires_at", cred.ExpiresAt))
		if err := s.Clear(ctx); err != nil {
			s.logger.Warn("remove expired credential", zap.Error(err))
		}
		return nil, false
	}

	return cred, true
}

// Clear removes the stored credential. It is a no-op when none exists.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.records.Delete(ctx, credentialKey); err != nil {
		return NewError(ErrCodePersistence, "clear credential: "+err.Error())
	}

	return nil
}

// IsValid reports whether a non-expired credential is stored.
func (s *CredentialStore) IsValid(ctx context.Context) bool {
	_, ok := s.Load(ctx)
	return ok
}
