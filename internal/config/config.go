package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // hours
	} `yaml:"jwt"`

	Razorpay struct {
		KeyID     string `yaml:"key_id"`
		KeySecret string `yaml:"key_secret"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"razorpay"`

	Subscription struct {
		FreeTradeLimit int    `yaml:"free_trade_limit"`
		MonthlyPrice   int64  `yaml:"monthly_price"`
		YearlyPrice    int64  `yaml:"yearly_price"`
		Currency       string `yaml:"currency"`
	} `yaml:"subscription"`

	Admin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

var AppConfig *Config

// LoadConfig reads the optional yaml config file, then applies environment
// overrides and defaults. Environment always wins over the file.
func LoadConfig() {
	var cfg Config

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("failed to read config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("failed to parse config file %s: %v", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func configFilePath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_TTL"); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil {
			cfg.JWT.TTL = ttl
		}
	}
	if v := os.Getenv("RAZORPAY_KEY_ID"); v != "" {
		cfg.Razorpay.KeyID = v
	}
	if v := os.Getenv("RAZORPAY_KEY_SECRET"); v != "" {
		cfg.Razorpay.KeySecret = v
	}
	if v := os.Getenv("RAZORPAY_BASE_URL"); v != "" {
		cfg.Razorpay.BaseURL = v
	}
	if v := os.Getenv("FREE_TRADE_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			cfg.Subscription.FreeTradeLimit = limit
		}
	}
	if v := os.Getenv("ADMIN_USERNAME"); v != "" {
		cfg.Admin.Username = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24
	}
	if cfg.Razorpay.BaseURL == "" {
		cfg.Razorpay.BaseURL = "https://api.razorpay.com"
	}
	if cfg.Subscription.FreeTradeLimit == 0 {
		cfg.Subscription.FreeTradeLimit = 10
	}
	if cfg.Subscription.MonthlyPrice == 0 {
		cfg.Subscription.MonthlyPrice = 299
	}
	if cfg.Subscription.YearlyPrice == 0 {
		cfg.Subscription.YearlyPrice = 2999
	}
	if cfg.Subscription.Currency == "" {
		cfg.Subscription.Currency = "INR"
	}
}
