package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "SCAFFOLD_"

type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Postgres PostgresConfig `koanf:"postgres"`
	Redis    RedisConfig    `koanf:"redis"`
	JWT      JWTConfig      `koanf:"jwt"`
	SMTP     SMTPConfig     `koanf:"smtp"`
	Log      LogConfig      `koanf:"log"`
	Client   ClientConfig   `koanf:"client"`
}

type AppConfig struct {
	Name   string `koanf:"name"`
	URL    string `koanf:"url"`
	Locale string `koanf:"locale"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type PostgresConfig struct {
	DSN string `koanf:"dsn"`
}

// RedisConfig selects the signed-link store. An empty Addr keeps signs in memory.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

type SMTPConfig struct {
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	Username   string `koanf:"username"`
	Password   string `koanf:"password"`
	From       string `koanf:"from"`
	FromName   string `koanf:"from_name"`
	UseSSL     bool   `koanf:"use_ssl"`
	RequireTLS bool   `koanf:"require_tls"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type ClientConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

func Default() Config {
	return Config{
		App: AppConfig{
			Name:   "guve scaffold",
			URL:    "http://localhost:8080",
			Locale: "en",
		},
		Server: ServerConfig{Port: 8080},
		JWT:    JWTConfig{TTL: time.Hour},
		SMTP: SMTPConfig{
			Port:       587,
			RequireTLS: true,
		},
		Log:    LogConfig{Level: "info"},
		Client: ClientConfig{BaseURL: "http://localhost:8080", Timeout: 10 * time.Second},
	}
}

// Load reads defaults, then an optional .env file, then SCAFFOLD_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(os.Environ)
}

// LoadFrom is Load without the .env step and with an injectable environment.
func LoadFrom(environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// transformEnv maps SCAFFOLD_SMTP_FROM_NAME to smtp.from_name.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], value
	}
	return parts[0] + "." + strings.Join(parts[1:], "_"), value
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt.ttl must be positive")
	}
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}
	return nil
}
