package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full configuration tree shared by every subcommand.
// Keys are populated by viper from flags, the yaml config file and
// RESUMESIFT_* environment variables.
type Config struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`

	Database DatabaseConfig `mapstructure:"database"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	AI       AIConfig       `mapstructure:"ai"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type AMQPConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Addr       string `mapstructure:"addr"`
	AdminToken string `mapstructure:"admin-token"`
}

// StorageConfig describes the S3-compatible object store holding the
// uploaded resume files. With only AccountID set the Cloudflare R2
// endpoint is derived, Endpoint overrides it for other providers.
type StorageConfig struct {
	AccountID     string `mapstructure:"account-id"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access-key"`
	SecretKey     string `mapstructure:"secret-key"`
	Endpoint      string `mapstructure:"endpoint"`
	PublicBaseURL string `mapstructure:"public-base-url"`
}

type AIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
	APIKey  string `mapstructure:"api-key"`
	// Weight is the share of the AI score in the blended overall
	// score, the remainder comes from the deterministic engine.
	Weight       float64 `mapstructure:"weight"`
	MaxLogLength int     `mapstructure:"max-log-length"`
}

type SMTPConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	SenderName  string `mapstructure:"sender-name"`
	SenderEmail string `mapstructure:"sender-email"`
	Company     string `mapstructure:"company"`
}

type WorkerConfig struct {
	Count         int `mapstructure:"count"`
	UploadWorkers int `mapstructure:"upload-workers"`
}

// SetDefaults registers defaults for every optional key. Required keys
// have no default and are enforced by the Validate* methods.
func SetDefaults() {
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("ai.model", "gemini-2.5-pro")
	viper.SetDefault("ai.weight", 0.3)
	viper.SetDefault("ai.max-log-length", 200)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.sender-name", "Recruitment Team")
	viper.SetDefault("worker.count", 3)
	viper.SetDefault("worker.upload-workers", 4)
}

// ValidateServe checks the keys the serve subcommand cannot run without.
func (c *Config) ValidateServe() error {
	missing := c.missingCore()
	if c.Server.AdminToken == "" {
		missing = append(missing, "server.admin-token")
	}
	return missingError(missing)
}

// ValidateWorker checks the keys the worker subcommand cannot run without.
func (c *Config) ValidateWorker() error {
	missing := c.missingCore()
	if c.AI.Enabled && c.AI.APIKey == "" {
		missing = append(missing, "ai.api-key")
	}
	return missingError(missing)
}

// ValidateReview checks the keys the review subcommand cannot run without.
func (c *Config) ValidateReview() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "database.url")
	}
	return missingError(missing)
}

// missingCore collects the keys serve and worker both require: the
// database, the queue and a usable object store.
func (c *Config) missingCore() []string {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "database.url")
	}
	if c.AMQP.URL == "" {
		missing = append(missing, "amqp.url")
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, "storage.bucket")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "storage.access-key")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "storage.secret-key")
	}
	if c.Storage.AccountID == "" && c.Storage.Endpoint == "" {
		missing = append(missing, "storage.account-id or storage.endpoint")
	}
	return missing
}

func missingError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
}
