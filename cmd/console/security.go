package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pradeshm/infinispan-console/internal/auth"
	"github.com/pradeshm/infinispan-console/internal/config"
	"github.com/pradeshm/infinispan-console/internal/observability"
)

// initSecurity builds the identity and the authentication capability for the
// configured security mode.
func (a *application) initSecurity(
	ctx context.Context,
	httpClient *http.Client,
) (auth.Identity, auth.Capability, error) {
	sec := a.config.Security

	switch sec.Mode {
	case config.SecurityModeToken:
		store, err := auth.NewFileTokenStore(sec.TokenFile, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read token file: %w", err)
		}
		a.tokenStore = store
		if err := store.Watch(ctx); err != nil {
			a.logger.Warn("token file will not be reloaded", observability.Error(err))
		}

		identity := auth.NewTokenIdentity(store)
		identity.MarkInitialized()
		a.logTokenClaims(identity)

		return identity, auth.NewService(true, nil), nil

	case config.SecurityModeDigest:
		source, err := a.credentialSource()
		if err != nil {
			return nil, nil, err
		}
		client := auth.NewDigestClient(source,
			auth.WithLogger(a.logger),
			auth.WithMetrics(a.metrics),
			auth.WithHTTPClient(httpClient),
		)
		return auth.Anonymous(), auth.NewService(true, client), nil

	default:
		return auth.Anonymous(), auth.NewService(false, nil), nil
	}
}

// credentialSource returns the configured source of digest credentials.
func (a *application) credentialSource() (auth.CredentialSource, error) {
	creds := a.config.Security.Credentials

	if creds.Source != config.CredentialSourceVault {
		return auth.StaticCredentials{Username: creds.Username, Password: creds.Password}, nil
	}

	vaultCfg := a.config.Vault
	source, err := auth.NewVaultCredentials(auth.VaultSettings{
		Address:   getEnvOrDefault("VAULT_ADDR", vaultCfg.Address),
		Token:     getEnvOrDefault("VAULT_TOKEN", vaultCfg.Token),
		Namespace: getEnvOrDefault("VAULT_NAMESPACE", vaultCfg.Namespace),
	}, creds.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vault credentials: %w", err)
	}

	a.logger.Info("reading credentials from vault", observability.String("path", creds.VaultPath))
	return source, nil
}

// logTokenClaims logs who the token belongs to. Undecodable tokens are left
// for the server to reject.
func (a *application) logTokenClaims(identity *auth.TokenIdentity) {
	claims, err := identity.Claims()
	if err != nil {
		a.logger.Warn("cannot decode token", observability.Error(err))
		return
	}
	a.logger.Info("using bearer token",
		observability.String("subject", claims.Subject),
		observability.String("username", claims.PreferredUsername),
		observability.Time("expires_at", claims.ExpiresAt),
	)
}
