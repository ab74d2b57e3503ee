package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB         DBConfig
	Server     ServerConfig
	Redis      RedisConfig
	LLM        LLMConfig
	PDF        PDFConfig
	Generation GenerationConfig
	Scheduler  SchedulerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DBConfig selects the driver and its connection parameters.
// Driver is "oracle" (go-ora), "godror" or "sqlite".
type DBConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LLMConfig selects the model backend. Provider is "googleai" (default) or
// "ollama"; ServerURL is only used by ollama.
type LLMConfig struct {
	Provider  string
	APIKey    string
	Model     string
	ServerURL string
	Timeout   time.Duration
}

type PDFConfig struct {
	Path     string
	CacheTTL time.Duration
}

type GenerationConfig struct {
	DefaultCount    int
	MaxCount        int
	SaveConcurrency int
	Categories      []string
}

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
	Category string
	Count    int
}

type LoggerConfig struct {
	Level string
	Env   string
	File  string
}

type RateLimitConfig struct {
	GeneratePerMinute int
	Burst             int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 120)

	v.SetDefault("db.driver", "oracle")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.sqlite_path", "quiz.db")

	v.SetDefault("llm.provider", "googleai")
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", 90)

	v.SetDefault("pdf.path", "data/reference.pdf")
	v.SetDefault("pdf.cache_ttl", 24*60*60)

	v.SetDefault("generation.default_count", 15)
	v.SetDefault("generation.max_count", 50)
	v.SetDefault("generation.save_concurrency", 4)
	v.SetDefault("generation.categories", []string{"技術", "管理", "其他"})

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "5m")
	v.SetDefault("scheduler.category", "技術")
	v.SetDefault("scheduler.count", 15)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("ratelimit.generate_per_minute", 6)
	v.SetDefault("ratelimit.burst", 2)
}

// LoadConfig reads config.yaml (when present) and APP_-prefixed environment
// variables, e.g. APP_DB_HOST or APP_LLM_API_KEY.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	interval, err := parseDuration(v.GetString("scheduler.interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler.interval: %w", err)
	}

	cfg := &Config{
		DB: DBConfig{
			Driver:     strings.ToLower(v.GetString("db.driver")),
			Host:       v.GetString("db.host"),
			Port:       v.GetInt("db.port"),
			User:       v.GetString("db.user"),
			Password:   v.GetString("db.password"),
			DBName:     v.GetString("db.name"),
			SQLitePath: v.GetString("db.sqlite_path"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		LLM: LLMConfig{
			Provider:  strings.ToLower(v.GetString("llm.provider")),
			APIKey:    v.GetString("llm.api_key"),
			Model:     v.GetString("llm.model"),
			ServerURL: v.GetString("llm.server_url"),
			Timeout:   time.Duration(v.GetInt("llm.timeout")) * time.Second,
		},
		PDF: PDFConfig{
			Path:     v.GetString("pdf.path"),
			CacheTTL: time.Duration(v.GetInt("pdf.cache_ttl")) * time.Second,
		},
		Generation: GenerationConfig{
			DefaultCount:    v.GetInt("generation.default_count"),
			MaxCount:        v.GetInt("generation.max_count"),
			SaveConcurrency: v.GetInt("generation.save_concurrency"),
			Categories:      v.GetStringSlice("generation.categories"),
		},
		Scheduler: SchedulerConfig{
			Enabled:  v.GetBool("scheduler.enabled"),
			Interval: interval,
			Category: v.GetString("scheduler.category"),
			Count:    v.GetInt("scheduler.count"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
			File:  v.GetString("logger.file"),
		},
		RateLimit: RateLimitConfig{
			GeneratePerMinute: v.GetInt("ratelimit.generate_per_minute"),
			Burst:             v.GetInt("ratelimit.burst"),
		},
	}

	// The Gemini key is commonly exported without the APP_ prefix.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

// GetDSN returns the data source name for the configured driver.
func (c *Config) GetDSN() string {
	switch c.DB.Driver {
	case "sqlite":
		return c.DB.SQLitePath
	case "godror":
		return fmt.Sprintf(`user=%q password=%q connectString="%s:%d/%s"`,
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
	default:
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
}
