package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	contents := `
app_secret:
  value: inline-secret
  version: "2"
database:
  host: db
  database: foodgram
  user: foodgram
  password: hunter2
media:
  volume: ` + dir + `
env: PROD
host_origin: https://foodgram.example.com
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	conf, err := loadConfigFromFile(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if conf.AppSecret.Value != "inline-secret" || conf.AppSecret.Version != "2" {
		t.Errorf("unexpected app secret: %+v", conf.AppSecret)
	}
	if conf.Env != EnvProd {
		t.Errorf("expected PROD, got %q", conf.Env)
	}
	if got := conf.Database.URL(); got != "postgresql://foodgram:hunter2@db:5432/foodgram" {
		t.Errorf("unexpected database url %q", got)
	}
	// Unset fields fall back to defaults.
	if conf.Media.URLPrefix != "/media" {
		t.Errorf("expected default media prefix, got %q", conf.Media.URLPrefix)
	}
}

func TestLoadConfigRejectsMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	if err := os.WriteFile(path, []byte("env: DEV\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := loadConfigFromFile(path); err == nil {
		t.Error("expected validation to fail without database credentials")
	}
}

func TestAppSecretGeneratedOnFirstBoot(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "secret")

	conf := Config{
		AppSecret: AppSecret{Path: secretPath},
		Database:  Database{Database: "d", User: "u", Password: "p"},
	}
	conf, err := finish(conf)
	if err != nil {
		t.Fatalf("finishing config: %v", err)
	}
	if conf.AppSecret.Value == "" {
		t.Fatal("expected a generated secret")
	}

	data, err := os.ReadFile(secretPath)
	if err != nil {
		t.Fatalf("reading secret file: %v", err)
	}
	if string(data) != conf.AppSecret.Value {
		t.Error("persisted secret does not match the loaded value")
	}

	// A second load reuses the persisted secret.
	again, err := finish(Config{
		AppSecret: AppSecret{Path: secretPath},
		Database:  Database{Database: "d", User: "u", Password: "p"},
	})
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if again.AppSecret.Value != conf.AppSecret.Value {
		t.Error("expected the persisted secret to be reused")
	}
}
