package config

import (
	"errors"

	"github.com/pradeshm/infinispan-console/internal/util"
)

// ValidateConfig validates a console configuration. All problems are
// reported together.
func ValidateConfig(cfg *ConsoleConfig) error {
	if cfg == nil {
		return util.NewConfigError("", "configuration is nil")
	}

	var errs []error

	if err := util.ValidateURL(cfg.Server.URL); err != nil {
		errs = append(errs, util.NewConfigErrorWithCause("server.url", "invalid server URL", err))
	}
	if cfg.Server.Timeout < 0 {
		errs = append(errs, util.NewConfigError("server.timeout", "must not be negative"))
	}

	errs = append(errs, validateSecurity(cfg)...)

	switch cfg.Observability.Logging.Format {
	case "", "json", "console":
	default:
		errs = append(errs, util.NewConfigError("observability.logging.format", "must be json or console"))
	}

	rate := cfg.Observability.Tracing.SamplingRate
	if rate < 0 || rate > 1 {
		errs = append(errs, util.NewConfigError("observability.tracing.samplingRate", "must be between 0 and 1"))
	}

	return errors.Join(errs...)
}

func validateSecurity(cfg *ConsoleConfig) []error {
	var errs []error
	sec := cfg.Security

	switch sec.Mode {
	case SecurityModeNone:
	case SecurityModeToken:
		if sec.TokenFile == "" {
			errs = append(errs, util.NewConfigError("security.tokenFile", "is required for token mode"))
		}
	case SecurityModeDigest:
		errs = append(errs, validateCredentials(cfg)...)
	default:
		errs = append(errs, util.NewConfigError("security.mode", "must be one of none, digest, token"))
	}

	return errs
}

func validateCredentials(cfg *ConsoleConfig) []error {
	creds := cfg.Security.Credentials

	switch creds.Source {
	case CredentialSourceStatic:
		if creds.Username == "" {
			return []error{util.NewConfigError("security.credentials.username", "is required for static credentials")}
		}
	case CredentialSourceVault:
		var errs []error
		if creds.VaultPath == "" {
			errs = append(errs, util.NewConfigError("security.credentials.vaultPath", "is required for vault credentials"))
		}
		if !cfg.Vault.Enabled {
			errs = append(errs, util.NewConfigError("vault.enabled", "vault must be enabled for vault credentials"))
		} else if err := util.ValidateURL(cfg.Vault.Address); err != nil {
			errs = append(errs, util.NewConfigErrorWithCause("vault.address", "invalid vault address", err))
		}
		return errs
	default:
		return []error{util.NewConfigError("security.credentials.source", "must be static or vault")}
	}

	return nil
}
