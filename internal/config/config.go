package config

import "time"

// Security modes.
const (
	// SecurityModeNone talks to an unsecured server.
	SecurityModeNone = "none"
	// SecurityModeDigest answers HTTP authentication challenges.
	SecurityModeDigest = "digest"
	// SecurityModeToken sends a bearer token issued by an identity provider.
	SecurityModeToken = "token"
)

// Credential sources.
const (
	CredentialSourceStatic = "static"
	CredentialSourceVault  = "vault"
)

// Default configuration values.
const (
	DefaultServerURL     = "http://localhost:11222"
	DefaultServerTimeout = 30 * time.Second
	DefaultNamespace     = "console"
	DefaultServiceName   = "infinispan-console"
)

// ConsoleConfig is the root configuration of the console.
type ConsoleConfig struct {
	Server        ServerConfig        `yaml:"server" json:"server"`
	Security      SecurityConfig      `yaml:"security" json:"security"`
	Vault         VaultConfig         `yaml:"vault" json:"vault"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// ServerConfig locates the management server.
type ServerConfig struct {
	URL     string   `yaml:"url" json:"url"`
	Timeout Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// SecurityConfig selects how requests are authenticated.
type SecurityConfig struct {
	Mode        string            `yaml:"mode" json:"mode"`
	TokenFile   string            `yaml:"tokenFile,omitempty" json:"tokenFile,omitempty"`
	Credentials CredentialsConfig `yaml:"credentials,omitempty" json:"credentials,omitempty"`
}

// CredentialsConfig holds the credentials answered to authentication challenges.
type CredentialsConfig struct {
	Source    string `yaml:"source,omitempty" json:"source,omitempty"`
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
	Password  string `yaml:"password,omitempty" json:"password,omitempty"`
	VaultPath string `yaml:"vaultPath,omitempty" json:"vaultPath,omitempty"`
}

// VaultConfig configures the Vault client used for credential lookups.
type VaultConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Address   string `yaml:"address,omitempty" json:"address,omitempty"`
	Token     string `yaml:"token,omitempty" json:"token,omitempty"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// ObservabilityConfig groups logging, metrics and tracing.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`

	// File receives the registry in text format when the command exits.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled" json:"enabled"`
	OTLPEndpoint string  `yaml:"otlpEndpoint,omitempty" json:"otlpEndpoint,omitempty"`
	SamplingRate float64 `yaml:"samplingRate,omitempty" json:"samplingRate,omitempty"`
	ServiceName  string  `yaml:"serviceName,omitempty" json:"serviceName,omitempty"`
}

// DefaultConfig returns a configuration for an unsecured local server.
func DefaultConfig() *ConsoleConfig {
	cfg := &ConsoleConfig{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their defaults.
func (c *ConsoleConfig) ApplyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = DefaultServerURL
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = Duration(DefaultServerTimeout)
	}
	if c.Security.Mode == "" {
		c.Security.Mode = SecurityModeNone
	}
	if c.Security.Credentials.Source == "" {
		c.Security.Credentials.Source = CredentialSourceStatic
	}

	logging := &c.Observability.Logging
	if logging.Level == "" {
		logging.Level = "info"
	}
	if logging.Format == "" {
		logging.Format = "json"
	}
	if logging.Output == "" {
		logging.Output = "stderr"
	}

	if c.Observability.Metrics.Namespace == "" {
		c.Observability.Metrics.Namespace = DefaultNamespace
	}

	tracing := &c.Observability.Tracing
	if tracing.ServiceName == "" {
		tracing.ServiceName = DefaultServiceName
	}
	if tracing.SamplingRate == 0 {
		tracing.SamplingRate = 1.0
	}
}
