package auth

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/library/config"
	"github.com/Laisky/miridev-mcp/library/log"
)

// DefaultTokenTTL is how long a login stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Settings configures the auth service.
type Settings struct {
	TokenTTL    time.Duration
	TokenSecret string
	Accounts    map[string]Account
}

// LoadSettings reads auth settings and applies defaults.
func LoadSettings(get config.Getter) Settings {
	days := config.Int(get, "settings.auth.token_ttl_days", 30)
	ttl := time.Duration(days) * 24 * time.Hour
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return Settings{
		TokenTTL:    ttl,
		TokenSecret: config.String(get, "settings.auth.token_secret", ""),
		Accounts:    LoadAccounts(get),
	}
}

// LoginRequest carries the login tool arguments.
type LoginRequest struct {
	Email    string
	Password string
	Force    bool
}

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	Success         bool
	AlreadySignedIn bool
	Credential      *Credential
	Error           string
}

// Status describes the current sign-in state.
type Status struct {
	Authenticated bool
	Credential    *Credential
	RemainingDays int
}

// Service implements login, logout and status on top of CredentialStore.
type Service struct {
	store  *CredentialStore
	authn  Authenticator
	tokens *TokenIssuer
	ttl    time.Duration
	clock  Clock
	logger logSDK.Logger
}

// NewService constructs an auth service.
func NewService(credStore *CredentialStore, authn Authenticator, settings Settings, clock Clock, logger logSDK.Logger) (*Service, error) {
	if credStore == nil {
		return nil, errors.New("credential store is required")
	}
	if authn == nil {
		authn = NewStaticAuthenticator(settings.Accounts)
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = log.Logger.Named("auth")
	}
	if settings.TokenTTL <= 0 {
		settings.TokenTTL = DefaultTokenTTL
	}

	tokens, err := NewTokenIssuer([]byte(settings.TokenSecret))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Service{
		store:  credStore,
		authn:  authn,
		tokens: tokens,
		ttl:    settings.TokenTTL,
		clock:  clock,
		logger: logger,
	}, nil
}

// Login signs in with req. Invalid credentials produce an unsuccessful
// result rather than an error and leave the store untouched.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if !req.Force {
		if cred, ok := s.store.Load(ctx); ok {
			return &LoginResult{Success: true, AlreadySignedIn: true, Credential: cred}, nil
		}
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, NewError(ErrCodeCredentialsRequired, "email and password are required to sign in")
	}

	identity, err := s.authn.Verify(ctx, req.Email, req.Password)
	if err != nil {
		if IsCode(err, ErrCodeInvalidCredentials) {
			s.logger.Info("login rejected", zap.String("email", req.Email))
			return &LoginResult{Success: false, Error: err.Error()}, nil
		}
		return nil, errors.Wrap(err, "verify credentials")
	}

	now := s.clock()
	expiresAt := now.Add(s.ttl)
	token, err := s.tokens.Issue(identity, now, expiresAt)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cred := &Credential{
		Email:       identity.Email,
		UserID:      identity.UserID,
		Plan:        identity.Plan,
		DisplayName: identity.DisplayName,
		IssuedAt:    now,
		ExpiresAt:   expiresAt,
		Token:       token,
	}
	if err := s.store.Save(ctx, cred); err != nil {
		return nil, errors.WithStack(err)
	}

	s.logger.Info("login succeeded",
		zap.String("email", cred.Email),
		zap.String("plan", cred.Plan),
		zap.Time("expires_at", cred.ExpiresAt))
	return &LoginResult{Success: true, Credential: cred}, nil
}

// Logout removes the stored credential.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return errors.WithStack(err)
	}

	s.logger.Info("logged out")
	return nil
}

// Status reports whether a valid credential exists and how long it lasts.
func (s *Service) Status(ctx context.Context) Status {
	cred, ok := s.store.Load(ctx)
	if !ok {
		return Status{}
	}

	remaining := cred.ExpiresAt.Sub(s.clock())
	return Status{
		Authenticated: true,
		Credential:    cred,
		RemainingDays: int(math.Ceil(remaining.Hours() / 24)),
	}
}

// Describe renders st as human readable text.
func (st Status) Describe() string {
	if !st.Authenticated || st.Credential == nil {
		return "Not signed in. Use login_miridev to sign in."
	}

	c := st.Credential
	return fmt.Sprintf("Signed in as %s (%s)\nPlan: %s\nExpires: %s (%d days left)",
		c.DisplayName, c.Email, c.Plan, c.ExpiresAt.Format("2006-01-02"), st.RemainingDays)
}
