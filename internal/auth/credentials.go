package auth

import (
	"context"
	"fmt"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
)

// Credentials are the username and password answered to a challenge.
type Credentials struct {
	Username string
	Password string
}

// CredentialSource supplies credentials on demand.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// StaticCredentials is a CredentialSource with fixed values.
type StaticCredentials Credentials

// Credentials returns the configured credentials.
func (s StaticCredentials) Credentials(_ context.Context) (Credentials, error) {
	if s.Username == "" {
		return Credentials{}, ErrNoCredentials
	}
	return Credentials(s), nil
}

// VaultSettings configures the Vault client used by VaultCredentials.
type VaultSettings struct {
	Address   string
	Token     string
	Namespace string
}

// VaultCredentials reads credentials from a KV secret holding "username"
// and "password" keys. Both KV v1 and v2 layouts are accepted.
type VaultCredentials struct {
	logical *vaultapi.Logical
	mount   string
	path    string
}

// NewVaultCredentials creates a Vault-backed source. vaultPath has the form
// mount/path.
func NewVaultCredentials(settings VaultSettings, vaultPath string) (*VaultCredentials, error) {
	mount, path, ok := strings.Cut(vaultPath, "/")
	if !ok || mount == "" || path == "" {
		return nil, NewProviderError("vault", "init", "invalid vault path format, expected mount/path")
	}

	apiConfig := vaultapi.DefaultConfig()
	if settings.Address != "" {
		apiConfig.Address = settings.Address
	}

	client, err := vaultapi.NewClient(apiConfig)
	if err != nil {
		return nil, NewProviderErrorWithCause("vault", "init", "failed to create vault client", err)
	}
	if settings.Token != "" {
		client.SetToken(settings.Token)
	}
	if settings.Namespace != "" {
		client.SetNamespace(settings.Namespace)
	}

	return &VaultCredentials{
		logical: client.Logical(),
		mount:   mount,
		path:    path,
	}, nil
}

// Credentials reads the secret. Nothing is cached.
func (v *VaultCredentials) Credentials(ctx context.Context) (Credentials, error) {
	fullPath := fmt.Sprintf("%s/data/%s", v.mount, v.path)

	secret, err := v.logical.ReadWithContext(ctx, fullPath)
	if err != nil {
		return Credentials{}, NewProviderErrorWithCause("vault", "read", "failed to read credentials", err)
	}
	if secret == nil || secret.Data == nil {
		// KV v1 mounts have no data/ prefix.
		fullPath = fmt.Sprintf("%s/%s", v.mount, v.path)
		secret, err = v.logical.ReadWithContext(ctx, fullPath)
		if err != nil {
			return Credentials{}, NewProviderErrorWithCause("vault", "read", "failed to read credentials", err)
		}
	}
	if secret == nil || secret.Data == nil {
		return Credentials{}, NewProviderErrorWithCause("vault", "read", fullPath, ErrNoCredentials)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		data = secret.Data
	}

	username, _ := data["username"].(string)
	password, _ := data["password"].(string)
	if username == "" {
		return Credentials{}, NewProviderErrorWithCause("vault", "read", "username not found in secret", ErrNoCredentials)
	}

	return Credentials{Username: username, Password: password}, nil
}

var (
	_ CredentialSource = StaticCredentials{}
	_ CredentialSource = (*VaultCredentials)(nil)
)
