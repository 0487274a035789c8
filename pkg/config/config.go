package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig     `yaml:"server"`
	Database DatabaseConfig   `yaml:"database"`
	LLM      LLMConfig        `yaml:"llm"`
	Assembly AssemblyAIConfig `yaml:"assemblyai"`
	Storage  StorageConfig    `yaml:"storage"`
	Redis    RedisConfig      `yaml:"redis"`
	Cache    CacheConfig      `yaml:"cache"`
	Ingest   IngestConfig     `yaml:"ingest"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `yaml:"port" envconfig:"PORT" validate:"required"`
	Host            string   `yaml:"host" envconfig:"HOST"`
	Environment     string   `yaml:"environment" envconfig:"ENVIRONMENT" validate:"oneof=development staging production test"`
	AllowedOrigins  []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	ShutdownTimeout int      `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gte=0"`
	DefaultPageSize int      `yaml:"default_page_size" envconfig:"DEFAULT_PAGE_SIZE" validate:"gt=0"`
}

// DatabaseConfig holds the SQLite database configuration
type DatabaseConfig struct {
	// Path is the database file; ":memory:" keeps everything in process.
	Path        string `yaml:"path" split_words:"true" validate:"required"`
	AutoMigrate bool   `yaml:"auto_migrate" split_words:"true"`
}

// LLMConfig holds the summarization model configuration
type LLMConfig struct {
	Provider    string        `yaml:"provider" validate:"oneof=ollama groq"`
	Model       string        `yaml:"model" validate:"required"`
	BaseURL     string        `yaml:"base_url" split_words:"true" validate:"required,url"`
	APIKey      string        `yaml:"api_key" split_words:"true"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
	Temperature float64       `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxRetries  int           `yaml:"max_retries" split_words:"true" validate:"gte=0"`
	VerifyModel bool          `yaml:"verify_model" split_words:"true"`
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey       string `yaml:"api_key" split_words:"true"`
	LanguageCode string `yaml:"language_code" split_words:"true"`
}

// StorageConfig holds object storage configuration for archived recordings
type StorageConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Endpoint        string        `yaml:"endpoint"`
	AccessKeyID     string        `yaml:"access_key_id" split_words:"true"`
	SecretAccessKey string        `yaml:"secret_access_key" split_words:"true"`
	BucketName      string        `yaml:"bucket_name" split_words:"true"`
	UseSSL          bool          `yaml:"use_ssl" split_words:"true"`
	PresignExpiry   time.Duration `yaml:"presign_expiry" split_words:"true"`
	// PublicURL replaces the endpoint in presigned URLs when MinIO sits behind a proxy.
	PublicURL string `yaml:"public_url" split_words:"true" validate:"omitempty,url"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig selects the meeting detail cache
type CacheConfig struct {
	Driver string        `yaml:"driver" validate:"oneof=none memory redis"`
	TTL    time.Duration `yaml:"ttl" validate:"gte=0"`
}

// IngestConfig holds the drop folder configuration
type IngestConfig struct {
	Dir       string `yaml:"dir"`
	DoneDir   string `yaml:"done_dir" split_words:"true"`
	FailedDir string `yaml:"failed_dir" split_words:"true"`
	Workers   int    `yaml:"workers" validate:"gte=0"`
}

const (
	defaultOllamaURL = "http://localhost:11434"
	defaultGroqURL   = "https://api.groq.com"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			Environment:     "development",
			AllowedOrigins:  []string{"http://localhost:3000"},
			ShutdownTimeout: 10,
			DefaultPageSize: 5,
		},
		Database: DatabaseConfig{
			Path:        "meetings.db",
			AutoMigrate: true,
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3.2",
			BaseURL:     defaultOllamaURL,
			Temperature: 0.3,
			VerifyModel: true,
		},
		Assembly: AssemblyAIConfig{
			LanguageCode: "en",
		},
		Storage: StorageConfig{
			Endpoint:        "localhost:9000",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			BucketName:      "meeting-minion",
			PresignExpiry:   time.Hour,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    10 * time.Minute,
		},
		Ingest: IngestConfig{
			Dir:       "inbox",
			DoneDir:   "inbox/done",
			FailedDir: "inbox/failed",
			Workers:   2,
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE, and environment variables, in increasing precedence. A .env
// file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == "groq" && cfg.LLM.BaseURL == defaultOllamaURL {
		cfg.LLM.BaseURL = defaultGroqURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadEnv overrides fields whose variables are set. Struct tags carry no
// defaults so that values from the file survive.
func (c *Config) loadEnv() error {
	sections := []struct {
		prefix string
		spec   interface{}
	}{
		{"SERVER", &c.Server},
		{"DB", &c.Database},
		{"LLM", &c.LLM},
		{"ASSEMBLYAI", &c.Assembly},
		{"STORAGE", &c.Storage},
		{"REDIS", &c.Redis},
		{"CACHE", &c.Cache},
		{"INGEST", &c.Ingest},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return fmt.Errorf("failed to read %s environment: %w", s.prefix, err)
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LLM.Provider == "groq" && c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required for the groq provider")
	}
	if c.Storage.Enabled && c.Storage.BucketName == "" {
		return fmt.Errorf("STORAGE_BUCKET_NAME is required when storage is enabled")
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
