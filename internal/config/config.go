package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Searx       SearxConfig       `yaml:"searx" mapstructure:"searx"`
	OAuth       OAuthConfig       `yaml:"oauth" mapstructure:"oauth"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Comparables ComparablesConfig `yaml:"comparables" mapstructure:"comparables"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Monitoring  MonitoringConfig  `yaml:"monitoring" mapstructure:"monitoring"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// SearxConfig holds search backend settings.
type SearxConfig struct {
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLSecs    int     `yaml:"cache_ttl_secs" mapstructure:"cache_ttl_secs"`
	RatePerSecond   float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst       int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxLoggedErrors int     `yaml:"max_logged_errors" mapstructure:"max_logged_errors"`
}

// OAuthConfig holds client-credentials settings for the search gateway.
type OAuthConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	TenantID     string `yaml:"tenant_id" mapstructure:"tenant_id"`
	Resource     string `yaml:"resource" mapstructure:"resource"`
	TokenURL     string `yaml:"token_url" mapstructure:"token_url"`
}

// ExtractConfig configures profile extraction fallbacks and thresholds.
type ExtractConfig struct {
	// FallbackSector is used when no sector keywords match. The product
	// target skews toward technology and consulting comparables, so the
	// shipped default keeps that bias but stays overridable.
	FallbackSector string `yaml:"fallback_sector" mapstructure:"fallback_sector"`
	FallbackRegion string `yaml:"fallback_region" mapstructure:"fallback_region"`
	// TaxonomyFile optionally points at a YAML file overriding the
	// built-in sector keyword taxonomy.
	TaxonomyFile  string  `yaml:"taxonomy_file" mapstructure:"taxonomy_file"`
	MinConfidence float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
}

// ComparablesConfig configures comparable discovery.
type ComparablesConfig struct {
	MaxResults    int     `yaml:"max_results" mapstructure:"max_results"`
	MinSimilarity float64 `yaml:"min_similarity" mapstructure:"min_similarity"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// MonitoringConfig configures the background alert checker.
type MonitoringConfig struct {
	// WebhookURL receives alert payloads; empty disables delivery.
	WebhookURL           string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	CheckIntervalSecs    int     `yaml:"check_interval_secs" mapstructure:"check_interval_secs"`
	FailureRateThreshold float64 `yaml:"failure_rate_threshold" mapstructure:"failure_rate_threshold"`
	// MinSearches is the minimum finished search count before the
	// failure-rate alert can fire.
	MinSearches int `yaml:"min_searches" mapstructure:"min_searches"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPARABLES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Required settings get empty defaults so env-only values
	// bind without a config file.
	v.SetDefault("searx.base_url", "")
	v.SetDefault("oauth.client_id", "")
	v.SetDefault("oauth.client_secret", "")
	v.SetDefault("oauth.tenant_id", "")
	v.SetDefault("oauth.resource", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("searx.timeout_secs", 30)
	v.SetDefault("searx.cache_ttl_secs", 300)
	v.SetDefault("searx.rate_per_second", 5)
	v.SetDefault("searx.rate_burst", 10)
	v.SetDefault("searx.max_logged_errors", 100)
	v.SetDefault("oauth.token_url", "https://login.microsoftonline.com")
	v.SetDefault("extract.fallback_sector", "Technology")
	v.SetDefault("extract.fallback_region", "Global")
	v.SetDefault("extract.min_confidence", 0.1)
	v.SetDefault("comparables.max_results", 10)
	v.SetDefault("comparables.min_similarity", 30)
	v.SetDefault("monitoring.check_interval_secs", 300)
	v.SetDefault("monitoring.failure_rate_threshold", 0.25)
	v.SetDefault("monitoring.min_searches", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings required to reach the search backend
// are present. The server refuses to start without them; the gateway also
// re-checks lazily so the core fails safely when hosted elsewhere.
func (c *Config) Validate() error {
	var missing []string
	if c.Searx.BaseURL == "" {
		missing = append(missing, "searx.base_url")
	}
	if c.OAuth.ClientID == "" {
		missing = append(missing, "oauth.client_id")
	}
	if c.OAuth.ClientSecret == "" {
		missing = append(missing, "oauth.client_secret")
	}
	if c.OAuth.TenantID == "" {
		missing = append(missing, "oauth.tenant_id")
	}
	if c.OAuth.Resource == "" {
		missing = append(missing, "oauth.resource")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
