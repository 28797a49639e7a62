package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	// Документное хранилище (идентичность)
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`

	// Реляционное хранилище (план и кредиты)
	Ledger struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"ledger"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	RateLimit struct {
		WindowSeconds int `yaml:"window_seconds"`
		MaxRequests   int `yaml:"max_requests"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LedgerDSN собирает DSN для MySQL. Таймаут подключения ограничен 60s,
// чтобы недоступность базы проявлялась ошибкой, а не зависанием.
func (c *Config) LedgerDSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=60s&readTimeout=60s&writeTimeout=60s",
		c.Ledger.User, c.Ledger.Password, c.Ledger.Host, c.Ledger.Port, c.Ledger.Database,
	)
}

func LoadConfig() {
	var cfg Config

	// Переменные окружения имеют приоритет (режим деплоя)
	if os.Getenv("MONGO_URI") != "" {
		loadFromEnv(&cfg)
		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	f, err := os.Open(configPath)
	if err != nil {
		log.Fatalf("Failed to open config file at %s: %v", configPath, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func loadFromEnv(cfg *Config) {
	cfg.Mongo.URI = os.Getenv("MONGO_URI")
	cfg.Mongo.Database = os.Getenv("MONGO_DB")

	cfg.Ledger.Host = os.Getenv("MYSQLHOST")
	cfg.Ledger.Port, _ = strconv.Atoi(os.Getenv("MYSQLPORT"))
	cfg.Ledger.User = os.Getenv("MYSQLUSER")
	cfg.Ledger.Password = os.Getenv("MYSQLPASSWORD")
	cfg.Ledger.Database = os.Getenv("MYSQLDATABASE")
	cfg.Ledger.PoolSize, _ = strconv.Atoi(os.Getenv("MYSQL_POOL_SIZE"))

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLHours, _ = strconv.Atoi(os.Getenv("JWT_TTL_HOURS"))

	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("PORT"))

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.RateLimit.WindowSeconds, _ = strconv.Atoi(os.Getenv("RATE_LIMIT_WINDOW"))
	cfg.RateLimit.MaxRequests, _ = strconv.Atoi(os.Getenv("RATE_LIMIT_MAX"))
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "katador"
	}
	if cfg.Ledger.Port == 0 {
		cfg.Ledger.Port = 3306
	}
	if cfg.Ledger.PoolSize == 0 {
		cfg.Ledger.PoolSize = 10
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 100
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
