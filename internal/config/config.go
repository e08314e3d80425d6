// Package config loads the service configuration from defaults, an optional
// config file, a .env file and STUDYTRACK_ environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/example/studytrack/internal/core"
)

const EnvPrefix = "STUDYTRACK"

type Config struct {
	Addr      string          `mapstructure:"addr" validate:"required"`
	Timezone  string          `mapstructure:"timezone"`
	DB        DBConfig        `mapstructure:"db"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Reminders ReminderConfig  `mapstructure:"reminders"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`

	Location *time.Location `mapstructure:"-"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite3 sqlite postgres"`
	DSN    string `mapstructure:"dsn" validate:"required"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json logfmt"`
}

type ReminderConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	StartHour int  `mapstructure:"start_hour" validate:"gte=0,lte=23"`
	EndHour   int  `mapstructure:"end_hour" validate:"gte=0,lte=23,gtefield=StartHour"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "studytrack.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 7*24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.start_hour", 8)
	v.SetDefault("reminders.end_hour", 21)
	v.SetDefault("telegram.token", "")
	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
}

// Load builds the configuration. file is an optional yaml/json/toml config file;
// a .env in the working directory is loaded when present.
func Load(file string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "failed to load .env")
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to stat .env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if err := core.Validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid timezone %q", c.Timezone)
	}
	c.Location = loc
	return nil
}
