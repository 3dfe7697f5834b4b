package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at process
// start and treated as immutable afterwards.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Scanner   CollaboratorConfig
	Inference CollaboratorConfig
	Store     StoreConfig
	DB        DBConfig
	S3        S3Config
	LLM       LLMConfig
	Prompts   PromptsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	ServiceName  string        `mapstructure:"service_name"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// MaxUploadBytes returns the per-file upload limit in bytes.
func (s *ServerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB * 1024 * 1024
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CollaboratorConfig describes how to reach a remote collaborator service.
type CollaboratorConfig struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the configured timeout, or fallback when unset.
func (c *CollaboratorConfig) Timeout(fallback time.Duration) time.Duration {
	if c.TimeoutSecs <= 0 {
		return fallback
	}
	return time.Duration(c.TimeoutSecs) * time.Second
}

// StoreConfig holds settings for the analysis result store: the client side
// (URL, APIKey, TimeoutSecs) and the backing storage used by cmd/resultstore.
type StoreConfig struct {
	CollaboratorConfig `mapstructure:",squash"`
	Backend            string `mapstructure:"backend"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the object-storage result backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LLMProviderConfig holds settings for a single model provider.
type LLMProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// LLMConfig holds the model gateway provider chain.
type LLMConfig struct {
	Primary   LLMProviderConfig `mapstructure:"primary"`
	Secondary LLMProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *LLMProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// PromptsConfig holds optional paths to prompt files overriding the built-in ones.
type PromptsConfig struct {
	ReviewPath  string `mapstructure:"review_path"`
	ComparePath string `mapstructure:"compare_path"`
}

// Load reads configuration from environment variables with the DOCREVIEW_ prefix.
// A .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DOCREVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "240s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.service_name", "docreview")
	v.SetDefault("server.max_upload_mb", 25)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Collaborator defaults
	v.SetDefault("scanner.url", "http://localhost:5001")
	v.SetDefault("scanner.api_key", "")
	v.SetDefault("scanner.timeout_secs", 60)
	v.SetDefault("inference.url", "http://localhost:5020")
	v.SetDefault("inference.api_key", "")
	v.SetDefault("inference.timeout_secs", 120)
	v.SetDefault("store.url", "http://localhost:5008")
	v.SetDefault("store.api_key", "")
	v.SetDefault("store.timeout_secs", 30)
	v.SetDefault("store.backend", "postgres")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docreview")
	v.SetDefault("db.password", "docreview_secret")
	v.SetDefault("db.name", "docreview_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docreview-results")
	v.SetDefault("s3.prefix", "analyse-results")
	v.SetDefault("s3.endpoint", "")

	// LLM defaults
	v.SetDefault("llm.primary.provider", "openrouter")
	v.SetDefault("llm.primary.api_key", "")
	v.SetDefault("llm.primary.default_model", "openrouter/auto")
	v.SetDefault("llm.primary.endpoint", "")
	v.SetDefault("llm.primary.timeout_secs", 90)
	v.SetDefault("llm.secondary.provider", "")
	v.SetDefault("llm.secondary.api_key", "")
	v.SetDefault("llm.secondary.default_model", "")
	v.SetDefault("llm.secondary.endpoint", "")
	v.SetDefault("llm.secondary.timeout_secs", 90)

	v.SetDefault("prompts.review_path", "")
	v.SetDefault("prompts.compare_path", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "DOCREVIEW_SERVER_PORT",
		"server.read_timeout":         "DOCREVIEW_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "DOCREVIEW_SERVER_WRITE_TIMEOUT",
		"server.environment":          "DOCREVIEW_SERVER_ENVIRONMENT",
		"server.service_name":         "DOCREVIEW_SERVER_SERVICE_NAME",
		"server.max_upload_mb":        "DOCREVIEW_SERVER_MAX_UPLOAD_MB",
		"log.level":                   "DOCREVIEW_LOG_LEVEL",
		"log.format":                  "DOCREVIEW_LOG_FORMAT",
		"cors.allowed_origins":        "DOCREVIEW_CORS_ALLOWED_ORIGINS",
		"scanner.url":                 "DOCREVIEW_SCANNER_URL",
		"scanner.api_key":             "DOCREVIEW_SCANNER_API_KEY",
		"scanner.timeout_secs":        "DOCREVIEW_SCANNER_TIMEOUT_SECS",
		"inference.url":               "DOCREVIEW_INFERENCE_URL",
		"inference.api_key":           "DOCREVIEW_INFERENCE_API_KEY",
		"inference.timeout_secs":      "DOCREVIEW_INFERENCE_TIMEOUT_SECS",
		"store.url":                   "DOCREVIEW_STORE_URL",
		"store.api_key":               "DOCREVIEW_STORE_API_KEY",
		"store.timeout_secs":          "DOCREVIEW_STORE_TIMEOUT_SECS",
		"store.backend":               "DOCREVIEW_STORE_BACKEND",
		"db.host":                     "DOCREVIEW_DB_HOST",
		"db.port":                     "DOCREVIEW_DB_PORT",
		"db.user":                     "DOCREVIEW_DB_USER",
		"db.password":                 "DOCREVIEW_DB_PASSWORD",
		"db.name":                     "DOCREVIEW_DB_NAME",
		"db.sslmode":                  "DOCREVIEW_DB_SSLMODE",
		"db.max_open":                 "DOCREVIEW_DB_MAX_OPEN",
		"db.max_idle":                 "DOCREVIEW_DB_MAX_IDLE",
		"s3.region":                   "DOCREVIEW_S3_REGION",
		"s3.bucket":                   "DOCREVIEW_S3_BUCKET",
		"s3.prefix":                   "DOCREVIEW_S3_PREFIX",
		"s3.endpoint":                 "DOCREVIEW_S3_ENDPOINT",
		"s3.access_key":               "DOCREVIEW_S3_ACCESS_KEY",
		"s3.secret_key":               "DOCREVIEW_S3_SECRET_KEY",
		"llm.primary.provider":        "DOCREVIEW_LLM_PRIMARY_PROVIDER",
		"llm.primary.api_key":         "DOCREVIEW_LLM_PRIMARY_API_KEY",
		"llm.primary.default_model":   "DOCREVIEW_LLM_PRIMARY_DEFAULT_MODEL",
		"llm.primary.endpoint":        "DOCREVIEW_LLM_PRIMARY_ENDPOINT",
		"llm.primary.timeout_secs":    "DOCREVIEW_LLM_PRIMARY_TIMEOUT_SECS",
		"llm.secondary.provider":      "DOCREVIEW_LLM_SECONDARY_PROVIDER",
		"llm.secondary.api_key":       "DOCREVIEW_LLM_SECONDARY_API_KEY",
		"llm.secondary.default_model": "DOCREVIEW_LLM_SECONDARY_DEFAULT_MODEL",
		"llm.secondary.endpoint":      "DOCREVIEW_LLM_SECONDARY_ENDPOINT",
		"llm.secondary.timeout_secs":  "DOCREVIEW_LLM_SECONDARY_TIMEOUT_SECS",
		"prompts.review_path":         "DOCREVIEW_PROMPTS_REVIEW_PATH",
		"prompts.compare_path":        "DOCREVIEW_PROMPTS_COMPARE_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Container platforms set PORT. Use it if DOCREVIEW_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCREVIEW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		ServiceName:  v.GetString("server.service_name"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Scanner = collaborator(v, "scanner")
	cfg.Inference = collaborator(v, "inference")
	cfg.Store = StoreConfig{
		CollaboratorConfig: collaborator(v, "store"),
		Backend:            v.GetString("store.backend"),
	}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Prefix:    v.GetString("s3.prefix"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.LLM = LLMConfig{
		Primary:   llmProvider(v, "llm.primary"),
		Secondary: llmProvider(v, "llm.secondary"),
	}
	cfg.Prompts = PromptsConfig{
		ReviewPath:  v.GetString("prompts.review_path"),
		ComparePath: v.GetString("prompts.compare_path"),
	}

	return cfg, nil
}

func collaborator(v *viper.Viper, key string) CollaboratorConfig {
	return CollaboratorConfig{
		URL:         strings.TrimRight(v.GetString(key+".url"), "/"),
		APIKey:      v.GetString(key + ".api_key"),
		TimeoutSecs: v.GetInt(key + ".timeout_secs"),
	}
}

func llmProvider(v *viper.Viper, key string) LLMProviderConfig {
	return LLMProviderConfig{
		Provider:     v.GetString(key + ".provider"),
		APIKey:       v.GetString(key + ".api_key"),
		DefaultModel: v.GetString(key + ".default_model"),
		Endpoint:     v.GetString(key + ".endpoint"),
		TimeoutSecs:  v.GetInt(key + ".timeout_secs"),
	}
}
