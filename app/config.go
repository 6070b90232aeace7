package prepwise

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Mode string

const (
	DevMode  Mode = "development"
	ProdMode Mode = "production"
)

type Config struct {
	// Port is the port number to listen on. The default is 8080.
	Port int `validate:"required,port"`
	// Hostname is the hostname to listen on. The default is 0.0.0.0.
	Hostname string `validate:"required"`
	// Mode selects the cookie transport attributes: production implies
	// Secure and SameSite=None for the cross-origin frontend.
	Mode Mode `validate:"required,oneof=development production"`
	Auth struct {
		// Secret is the key used to sign session tokens. It must be a
		// base64 encoded string of at least 32 bytes. There is no
		// default: a missing secret is a fatal startup error.
		Secret Base64Encoded `validate:"required,min=32"`
		// TokenValidity is the session token lifetime. The default is
		// 168h (7 days).
		TokenValidity time.Duration `mapstructure:"token_validity"`
		// BcryptCost is the password hashing cost factor. Values below
		// the bcrypt default are raised to it.
		BcryptCost int `mapstructure:"bcrypt_cost"`
	}
	SQLite struct {
		// File is the path to the SQLite database file.
		File string `validate:"required"`
		// Migrations is the directory holding the goose migration files.
		Migrations string `validate:"required"`
	}
	// AllowedOrigins is the list of origins allowed to call the API with
	// credentials. The default is ["*"].
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TLS            struct {
		Crt string
		Key string
	}
	valid bool
}

type Base64Encoded []byte

func (b *Base64Encoded) UnmarshalText(text []byte) error {
	dec, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("base64 decode: %w", err)
	}
	*b = dec
	return nil
}

// LoadConfig loads the configuration from an optional .env file, an
// optional config.yaml and environment variables, in increasing order of
// precedence. Invalid values are deferred to Validate.
func LoadConfig() (*Config, error) {
	// a missing .env file is fine, env vars may come from the process
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("port", 8080)
	viper.SetDefault("hostname", "0.0.0.0")
	viper.SetDefault("mode", string(DevMode))
	viper.SetDefault("auth.secret", "")
	viper.SetDefault("auth.token_validity", "168h")
	viper.SetDefault("auth.bcrypt_cost", 10)
	viper.SetDefault("sqlite.file", "./prepwise.db")
	viper.SetDefault("sqlite.migrations", "./migrations")
	viper.SetDefault("allowed_origins", "*")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		),
	); err != nil {
		// defer the error to the validation step
		return config, nil
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.valid {
		return nil
	}
	if err := validate.Struct(c); err != nil {
		return err
	}
	c.valid = true
	return nil
}
