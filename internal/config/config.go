package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names recognized by the config loader.
const (
	EnvConfigPath   = "CONFIG_PATH"
	EnvDBConnection = "DB_CONNECTION"
	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiry    = "JWT_EXPIRY"
	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPEmail    = "SMTP_EMAIL"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvAppEnv       = "APP_ENV"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// ErrMissingDatabaseDSN indicates no database DSN is present in the config file.
var ErrMissingDatabaseDSN = errors.New("missing database dsn (set `database-dsn` or `database.dsn` in config file)")

// JWTConfig holds session token secret and lifetime settings. The cookie
// carrying the token uses the same lifetime as the token itself.
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// MailConfig holds SMTP transport settings for outbound email.
type MailConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	FromName  string `yaml:"from-name"`
	FromEmail string `yaml:"from-email"`

	// DevFallback returns OTP codes in API responses when delivery fails.
	// Must never be enabled in a deployed environment.
	DevFallback bool `yaml:"dev-fallback"`
}

// AdminSeed holds the optional admin account ensured at startup.
type AdminSeed struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port       int  `yaml:"port"`
	Production bool `yaml:"production"`
}

// fileConfig maps the full YAML config file.
type fileConfig struct {
	DatabaseDSN string `yaml:"database-dsn"`
	Database    struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	JWT    JWTConfig    `yaml:"jwt"`
	Mail   MailConfig   `yaml:"mail"`
	Admin  AdminSeed    `yaml:"admin"`
	Server ServerConfig `yaml:"server"`
}

// readFileConfig parses the YAML config file, tolerating a missing file.
func readFileConfig(configPath string) fileConfig {
	var cfg fileConfig
	data, errRead := os.ReadFile(configPath)
	if errRead != nil {
		return cfg
	}
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return fileConfig{}
	}
	return cfg
}

// LoadDatabaseDSN reads the database DSN from the environment or config file.
func LoadDatabaseDSN(configPath string) (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(EnvDBConnection)); dsn != "" {
		return dsn, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config file: %w", err)
	}

	var cfg fileConfig
	if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
		return "", fmt.Errorf("parse config file: %w", errUnmarshal)
	}

	if dsn := strings.TrimSpace(cfg.DatabaseDSN); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		return dsn, nil
	}
	return "", ErrMissingDatabaseDSN
}

// defaultJWTExpiry is used when the config omits or invalidates token expiry.
const defaultJWTExpiry = 7 * 24 * time.Hour

// LoadJWTConfig loads session token settings from the config file with
// environment overrides.
func LoadJWTConfig(configPath string) (JWTConfig, error) {
	result := readFileConfig(configPath).JWT

	if secret := strings.TrimSpace(os.Getenv(EnvJWTSecret)); secret != "" {
		result.Secret = secret
	}
	if expiryRaw := strings.TrimSpace(os.Getenv(EnvJWTExpiry)); expiryRaw != "" {
		if expiry, errParse := time.ParseDuration(expiryRaw); errParse == nil && expiry > 0 {
			result.Expiry = expiry
		}
	}

	if result.Expiry <= 0 {
		result.Expiry = defaultJWTExpiry
	}
	return result, nil
}

// LoadMailConfig loads SMTP settings from the config file with environment
// overrides.
func LoadMailConfig(configPath string) (MailConfig, error) {
	result := readFileConfig(configPath).Mail

	if host := strings.TrimSpace(os.Getenv(EnvSMTPHost)); host != "" {
		result.Host = host
	}
	if portRaw := strings.TrimSpace(os.Getenv(EnvSMTPPort)); portRaw != "" {
		var port int
		if _, errScan := fmt.Sscanf(portRaw, "%d", &port); errScan == nil && port > 0 {
			result.Port = port
		}
	}
	if username := strings.TrimSpace(os.Getenv(EnvSMTPEmail)); username != "" {
		result.Username = username
	}
	if password := strings.TrimSpace(os.Getenv(EnvSMTPPassword)); password != "" {
		result.Password = password
	}

	if result.Port <= 0 {
		result.Port = 587
	}
	if result.FromName == "" {
		result.FromName = "Vox Edge Media"
	}
	if result.FromEmail == "" {
		result.FromEmail = result.Username
	}
	return result, nil
}

// LoadAdminSeed loads the optional startup admin account from the config file.
func LoadAdminSeed(configPath string) AdminSeed {
	return readFileConfig(configPath).Admin
}

// LoadServerConfig loads server settings from the config file. APP_ENV=production
// forces production mode regardless of the file.
func LoadServerConfig(configPath string) ServerConfig {
	result := readFileConfig(configPath).Server
	if strings.EqualFold(strings.TrimSpace(os.Getenv(EnvAppEnv)), "production") {
		result.Production = true
	}
	return result
}
