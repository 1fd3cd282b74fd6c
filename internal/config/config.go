package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// S3Config holds the credentials for the S3-compatible object store. When the
// store is enabled, every field except Endpoint is required; the endpoint is
// derived from the account id unless set explicitly.
type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	AccountID       string `mapstructure:"account_id"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// Config is the top-level application configuration, read from environment
// variables (TASKDECK_*) and an optional taskdeck.yaml.
type Config struct {
	Addr       string        `mapstructure:"addr"`
	DBPath     string        `mapstructure:"db_path"`
	StaticDir  string        `mapstructure:"static_dir"`
	Env        string        `mapstructure:"env"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	S3         S3Config      `mapstructure:"s3"`
}

// Production reports whether the server runs in production mode. It controls
// the Secure flag on session cookies and gin's release mode.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// ResolvedEndpoint returns the object-store endpoint, deriving the Cloudflare
// R2 form from the account id when no explicit endpoint is configured.
func (c *S3Config) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("%s.r2.cloudflarestorage.com", c.AccountID)
}

func defaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "data/taskdeck.db")
	v.SetDefault("static_dir", "web/dist")
	v.SetDefault("env", "development")
	v.SetDefault("session_ttl", 168*time.Hour)
	v.SetDefault("s3.enabled", true)
	v.SetDefault("s3.use_ssl", true)
	// Credentials default to empty so env-only values are visible to Unmarshal.
	v.SetDefault("s3.account_id", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
}

// Load reads configuration from path (optional) and the environment, applies
// defaults, and validates the result. Missing object-store credentials abort
// startup rather than surfacing later as runtime upload failures.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for required values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Env != "development" && c.Env != "production" {
		return fmt.Errorf("env must be development or production, got %q", c.Env)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.S3.Enabled {
		missing := []string{}
		if c.S3.AccountID == "" {
			missing = append(missing, "s3.account_id")
		}
		if c.S3.AccessKeyID == "" {
			missing = append(missing, "s3.access_key_id")
		}
		if c.S3.SecretAccessKey == "" {
			missing = append(missing, "s3.secret_access_key")
		}
		if c.S3.Bucket == "" {
			missing = append(missing, "s3.bucket")
		}
		if len(missing) > 0 {
			return fmt.Errorf("object store enabled but missing %s", strings.Join(missing, ", "))
		}
	}
	return nil
}
