package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Site      SiteConfig      `yaml:"site"`
	Form      FormConfig      `yaml:"form"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Receiver  ReceiverConfig  `yaml:"receiver"`
	Minio     MinioConfig     `yaml:"minio"`
	Store     StoreConfig     `yaml:"store"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// SiteConfig describes the static pages and their shared fragments.
type SiteConfig struct {
	Root      string `yaml:"root"`
	HeaderURL string `yaml:"header_url"`
	FooterURL string `yaml:"footer_url"`
	// FragmentBaseURL switches fragment loading from the site root to HTTP.
	FragmentBaseURL string `yaml:"fragment_base_url"`
}

// FormConfig configures form clients (terminal and browser builds).
type FormConfig struct {
	ScriptURL        string `yaml:"script_url"`
	BannerDurationMS int    `yaml:"banner_duration_ms"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"` // 0 = no client timeout
}

// WebhookConfig is used by the same-origin contact proxy.
type WebhookConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ReceiverConfig struct {
	Enabled           bool       `yaml:"enabled"`
	SpamTerms         []string   `yaml:"spam_terms"`
	NotificationEmail string     `yaml:"notification_email"`
	SMTP              SMTPConfig `yaml:"smtp"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
}

// Enabled reports whether a MinIO archive was configured.
func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

type StoreConfig struct {
	MaxRows int `yaml:"max_rows"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultSpamTerms is the denylist shipped with the provisioned webhook.
var DefaultSpamTerms = []string{
	"viagra",
	"casino",
	"lottery",
	"winner",
	"bitcoin",
	"crypto",
	"investment opportunity",
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Site.Root == "" {
		c.Site.Root = "./public"
	}
	if c.Site.HeaderURL == "" {
		c.Site.HeaderURL = "/components/header.html"
	}
	if c.Site.FooterURL == "" {
		c.Site.FooterURL = "/components/footer.html"
	}
	if c.Form.BannerDurationMS == 0 {
		c.Form.BannerDurationMS = 5000
	}
	if c.Webhook.URL == "" {
		c.Webhook.URL = c.Form.ScriptURL
	}
	if c.Webhook.TimeoutSeconds == 0 {
		c.Webhook.TimeoutSeconds = 30
	}
	if len(c.Receiver.SpamTerms) == 0 {
		c.Receiver.SpamTerms = append([]string(nil), DefaultSpamTerms...)
	}
	if c.Receiver.SMTP.Port == 0 {
		c.Receiver.SMTP.Port = 587
	}
	if c.Minio.Prefix == "" {
		c.Minio.Prefix = "submissions"
	}
	if c.Store.MaxRows == 0 {
		c.Store.MaxRows = 1000
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 30
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
