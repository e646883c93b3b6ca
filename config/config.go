// Package config loads the application settings.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Database DatabaseConfig `yaml:"database"`
	Build    BuildConfig    `yaml:"build"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig points at the three raw game-data files.
type DataConfig struct {
	Items   string `yaml:"items"`
	Ores    string `yaml:"ores"`
	Recipes string `yaml:"recipes"`
}

// DatabaseConfig holds the MySQL connection settings.
type DatabaseConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
}

// BuildConfig tunes recipe catalog construction.
type BuildConfig struct {
	Workers        int  `yaml:"workers"`
	StrictDuration bool `yaml:"strict_duration"`
}

// LogConfig selects the logger flavour.
type LogConfig struct {
	Development bool `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Data: DataConfig{
			Items:   "data/items.json",
			Ores:    "data/ores.json",
			Recipes: "data/recipes.json",
		},
		Database: DatabaseConfig{
			User:     "sfcatalog_user",
			Password: "sfcatalog_pass",
			Host:     "127.0.0.1",
			Port:     3306,
			Name:     "sfcatalog_db",
		},
		Build: BuildConfig{Workers: 1},
	}
}

// DSN formats the MySQL data source name.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c Config) Validate() error {
	if c.Data.Items == "" || c.Data.Ores == "" || c.Data.Recipes == "" {
		return errors.New("data.items, data.ores and data.recipes must be set")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port %d out of range", c.Database.Port)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must not be negative, got %d", c.Build.Workers)
	}
	return nil
}
