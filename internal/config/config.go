// Package config loads the grievance service configuration from a YAML
// file with environment variable overrides.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName    = "grievance"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultMongoURI       = "mongodb://localhost:27017"
	defaultMongoDatabase  = "grievance"
	defaultMongoTimeout   = 10 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultTokenTTL       = 24 * time.Hour
	defaultSMTPPort       = 587
	defaultImageDir       = "./uploads"
	defaultImageMaxBytes  = 5 << 20 // 5 MiB
	defaultWindowDays     = 7
	defaultWindowLimit    = 10
	defaultMaxTextRunes   = 10000
)

// Config holds all configuration for the grievance service.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Logging   LoggingConfig   `yaml:"logging"`
	Auth      AuthConfig      `yaml:"auth"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Images    ImagesConfig    `yaml:"images"`
	Detection DetectionConfig `yaml:"detection"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"GRIEVANCE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"      yaml:"debug"`
	// MaxTextRunes caps complaint text length at the request boundary.
	MaxTextRunes int `yaml:"max_text_runes"`
}

// MongoConfig holds document store configuration.
type MongoConfig struct {
	URI      string        `env:"MONGO_URI" yaml:"uri"`
	Database string        `env:"MONGO_DB"  yaml:"database"`
	Timeout  time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string        `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// SMTPConfig holds outbound notification mail configuration. Notifications
// are disabled when Host is empty.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"     yaml:"host"`
	Port     int    `env:"SMTP_PORT"     yaml:"port"`
	Username string `env:"SMTP_USER"     yaml:"username"`
	Password string `env:"SMTP_PASSWORD" yaml:"password"`
	From     string `env:"SMTP_FROM"     yaml:"from"`
}

// ImagesConfig holds evidence image storage configuration.
type ImagesConfig struct {
	Dir      string `env:"IMAGE_DIR" yaml:"dir"`
	BaseURL  string `yaml:"base_url"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// DetectionConfig holds the duplicate candidate window parameters: the
// submitter's own complaints, newest-first.
type DetectionConfig struct {
	WindowDays  int `yaml:"window_days"`
	WindowLimit int `yaml:"window_limit"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Service.MaxTextRunes == 0 {
		cfg.Service.MaxTextRunes = defaultMaxTextRunes
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	if cfg.Mongo.Timeout == 0 {
		cfg.Mongo.Timeout = defaultMongoTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = defaultSMTPPort
	}
	if cfg.Images.Dir == "" {
		cfg.Images.Dir = defaultImageDir
	}
	if cfg.Images.MaxBytes == 0 {
		cfg.Images.MaxBytes = defaultImageMaxBytes
	}
	if cfg.Detection.WindowDays == 0 {
		cfg.Detection.WindowDays = defaultWindowDays
	}
	if cfg.Detection.WindowLimit == 0 {
		cfg.Detection.WindowLimit = defaultWindowLimit
	}
}
