package config

import (
	"fmt"
	"os"
)

// PlaceholderSecret is the value shipped in deployment templates. The server
// refuses to start while the session secret still carries it.
const PlaceholderSecret = "this_should_be_configured"

// Config holds the application configuration. It is loaded once at process
// start and treated as immutable for the process lifetime; constructors
// receive the values they need instead of reading ambient state.
type Config struct {
	// Symmetric key used to sign session tokens and the cookie envelope
	SessionSecret string

	// Server bind address (host:port)
	ServerAddr string

	// Telemetry database connection string (DSN)
	DatabaseURL string

	// Enable debug logging
	Debug bool

	// Corporate directory used for login
	Directory DirectoryConfig

	// File transfer server browsed from the admin area
	FTP FTPConfig

	// Mailbox review and contact-form delivery
	Mail MailConfig

	// OpenTelemetry export settings
	Observability ObservabilityConfig
}

// DirectoryConfig holds the LDAP directory settings used when
// authenticating portal users.
type DirectoryConfig struct {
	// URL is the directory address (e.g., "ldap://dc1.corp.example.com:389")
	URL string

	// Domain is the fixed realm suffix appended to usernames for the bind
	// (e.g., "corp.example.com" binds as "alice@corp.example.com")
	Domain string

	// SearchBase is the subtree searched for the authenticated user's entry
	// (e.g., "DC=corp,DC=example,DC=com")
	SearchBase string
}

// FTPConfig holds the file-transfer server settings for admin browsing.
type FTPConfig struct {
	Addr     string // host:port
	Username string
	Password string
	RootDir  string // directory listed in the admin file browser
}

// MailConfig holds inbox review (POP3) and outbound contact mail (SMTP)
// settings.
type MailConfig struct {
	POP3Host     string
	POP3Port     int
	POP3Username string
	POP3Password string

	SMTPHost string
	SMTPPort int

	// ContactTo receives contact-form submissions; ContactFrom is the
	// envelope sender for those messages.
	ContactTo   string
	ContactFrom string
}

// ObservabilityConfig holds the OpenTelemetry export settings. An empty
// OTLPEndpoint disables export entirely.
type ObservabilityConfig struct {
	OTLPEndpoint   string // host:port of the OTLP collector
	OTLPProtocol   string // "http/protobuf" is the only supported protocol
	OTLPInsecure   bool   // skip TLS when talking to the collector
	ServiceName    string
	ServiceVersion string
	Environment    string
}

// Load reads configuration from environment variables with fallback defaults.
// A missing or placeholder session secret is a fatal configuration error:
// the process must not serve any traffic with a forgeable session key.
func Load() (*Config, error) {
	cfg := &Config{
		SessionSecret: getEnv("SESSION_SECRET", ""),
		ServerAddr:    getEnv("SERVER_ADDR", "localhost:8080"),
		DatabaseURL:   getEnv("DATABASE_URL", "file:opsportal.db"),
		Debug:         getEnvBool("DEBUG", false),
		Directory: DirectoryConfig{
			URL:        getEnv("LDAP_URL", ""),
			Domain:     getEnv("LDAP_DOMAIN", ""),
			SearchBase: getEnv("LDAP_SEARCH_BASE", ""),
		},
		FTP: FTPConfig{
			Addr:     getEnv("FTP_ADDR", ""),
			Username: getEnv("FTP_USERNAME", "anonymous"),
			Password: getEnv("FTP_PASSWORD", "anonymous"),
			RootDir:  getEnv("FTP_ROOT_DIR", "/"),
		},
		Mail: MailConfig{
			POP3Host:     getEnv("POP3_HOST", ""),
			POP3Port:     getEnvInt("POP3_PORT", 110),
			POP3Username: getEnv("POP3_USERNAME", ""),
			POP3Password: getEnv("POP3_PASSWORD", ""),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnvInt("SMTP_PORT", 587),
			ContactTo:    getEnv("CONTACT_TO", ""),
			ContactFrom:  getEnv("CONTACT_FROM", "portal@localhost"),
		},
		Observability: ObservabilityConfig{
			OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			OTLPProtocol:   getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", "http/protobuf"),
			OTLPInsecure:   getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
			ServiceName:    getEnv("SERVICE_NAME", "opsportal"),
			ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.SessionSecret == PlaceholderSecret {
		return nil, fmt.Errorf("SESSION_SECRET still has the placeholder value; set a real secret")
	}

	if cfg.Directory.URL == "" {
		return nil, fmt.Errorf("LDAP_URL is required")
	}
	if cfg.Directory.Domain == "" {
		return nil, fmt.Errorf("LDAP_DOMAIN is required")
	}
	if cfg.Directory.SearchBase == "" {
		return nil, fmt.Errorf("LDAP_SEARCH_BASE is required")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
