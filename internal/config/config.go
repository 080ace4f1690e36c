// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	configFilePath     = "/data/foodgram.yaml"
	appSecretBytes     = 32
	appSecretFilePerms = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

type AppSecret struct {
	Value   string `yaml:"value"`
	Path    string `yaml:"path" validate:"omitempty,filepath"`
	Version string `yaml:"version"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// URL renders the postgres connection string.
func (d Database) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

type Media struct {
	Volume    string `yaml:"volume"`
	URLPrefix string `yaml:"url_prefix"`
}

// Admin describes the bootstrap admin account created at first boot.
type Admin struct {
	Username string `yaml:"username" validate:"required_with=Email"`
	Email    string `yaml:"email" validate:"omitempty,email"`
	Password string `yaml:"password" validate:"required_with=Email"`
}

type Config struct {
	AppSecret      AppSecret `yaml:"app_secret"`
	Database       Database  `yaml:"database"`
	Media          Media     `yaml:"media"`
	Admin          Admin     `yaml:"admin"`
	IngredientsCSV string    `yaml:"ingredients_csv" validate:"omitempty,filepath"`
	HostOrigin     string    `yaml:"host_origin" validate:"url"`
	Env            string    `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

// loadAppSecret resolves the app secret: an inline value wins, otherwise
// the secret file at AppSecret.Path is read, generating it on first boot.
func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != "" {
		return nil
	}

	if f, err := os.Lstat(config.AppSecret.Path); err == nil {
		if f.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading secret file: %w", err)
		}
		config.AppSecret.Value = string(data)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking secret path: %w", err)
	}

	secret, err := newAppSecret()
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.AppSecret.Path, []byte(secret), appSecretFilePerms); err != nil {
		return fmt.Errorf("writing secret file: %w", err)
	}
	config.AppSecret.Value = secret
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func applyDefaults(config *Config) {
	if config.AppSecret.Path == "" {
		config.AppSecret.Path = "/data/secret"
	}
	if config.AppSecret.Version == "" {
		config.AppSecret.Version = "1"
	}
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.HostOrigin == "" {
		config.HostOrigin = "http://localhost:8080"
	}
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Media.Volume == "" {
		config.Media.Volume = "/data/media"
	}
	if config.Media.URLPrefix == "" {
		config.Media.URLPrefix = "/media"
	}
}

func loadConfigFromEnv() (Config, error) {
	config := Config{
		HostOrigin: os.Getenv("HOST_ORIGIN"),
		Env:        os.Getenv("ENV"),
		AppSecret: AppSecret{
			Value:   os.Getenv("APP_SECRET"),
			Path:    os.Getenv("APP_SECRET_PATH"),
			Version: os.Getenv("APP_SECRET_VERSION"),
		},
		Database: Database{
			Host:     os.Getenv("DATABASE_HOST"),
			Database: os.Getenv("DATABASE"),
			User:     os.Getenv("DATABASE_USER"),
			Password: os.Getenv("DATABASE_PASSWORD"),
		},
		Media: Media{
			Volume:    os.Getenv("MEDIA_VOLUME"),
			URLPrefix: os.Getenv("MEDIA_URL_PREFIX"),
		},
		Admin: Admin{
			Username: os.Getenv("ADMIN_USERNAME"),
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		IngredientsCSV: os.Getenv("INGREDIENTS_CSV"),
	}

	portStr := loadWithDefault("DATABASE_PORT", "5432")
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return config, fmt.Errorf("invalid DATABASE_PORT (%q): %w", portStr, err)
	}
	config.Database.Port = uint16(port)

	return finish(config)
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	return finish(config)
}

func finish(config Config) (Config, error) {
	applyDefaults(&config)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return Config{}, err
	}

	if err := loadAppSecret(&config); err != nil {
		return Config{}, fmt.Errorf("loading app secret: %w", err)
	}
	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return !f.IsDir()
}

func LoadConfig() (Config, error) {
	if configFileExists(configFilePath) {
		return loadConfigFromFile(configFilePath)
	}
	return loadConfigFromEnv()
}
