package auth

import (
	"sync/atomic"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Identity is the token-based identity provider as seen by the dispatcher.
type Identity interface {
	// IsInitialized reports whether the provider has completed its login flow.
	IsInitialized() bool

	// Token returns the current bearer token.
	Token() string
}

// TokenClaims are the token fields used for diagnostics.
type TokenClaims struct {
	Subject           string
	PreferredUsername string
	ExpiresAt         time.Time
}

// TokenIdentity is an Identity backed by a TokenStore. It starts
// uninitialized; MarkInitialized is called once the login flow completes.
type TokenIdentity struct {
	store       TokenStore
	initialized atomic.Bool
}

// NewTokenIdentity creates a new TokenIdentity.
func NewTokenIdentity(store TokenStore) *TokenIdentity {
	return &TokenIdentity{store: store}
}

// MarkInitialized records that the identity provider is ready.
func (i *TokenIdentity) MarkInitialized() {
	i.initialized.Store(true)
}

// IsInitialized reports whether the identity provider is ready.
func (i *TokenIdentity) IsInitialized() bool {
	return i.initialized.Load()
}

// Token returns the token currently held by the store. The read is a
// point-in-time snapshot; expiry is left to the server.
func (i *TokenIdentity) Token() string {
	if i.store == nil {
		return ""
	}
	return i.store.Token()
}

// Claims decodes the current token without verifying its signature.
func (i *TokenIdentity) Claims() (*TokenClaims, error) {
	token := i.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	parsed, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return nil, NewProviderErrorWithCause("token", "claims", "failed to decode token", err)
	}

	claims := &TokenClaims{
		Subject:   parsed.Subject(),
		ExpiresAt: parsed.Expiration(),
	}
	if v, ok := parsed.Get("preferred_username"); ok {
		if s, ok := v.(string); ok {
			claims.PreferredUsername = s
		}
	}

	return claims, nil
}

// anonymous is the Identity of sessions without an identity provider.
type anonymous struct{}

func (anonymous) IsInitialized() bool { return false }
func (anonymous) Token() string       { return "" }

// Anonymous returns an Identity that is never initialized.
func Anonymous() Identity {
	return anonymous{}
}

var (
	_ Identity = (*TokenIdentity)(nil)
	_ Identity = anonymous{}
)
