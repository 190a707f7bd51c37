// Package config loads the pet shop configuration on top of the core settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	coreconfig "github.com/m3rciful/petshop/core/config"
	coredatabase "github.com/m3rciful/petshop/core/database"
	"github.com/m3rciful/petshop/internal/model"
)

// DefaultDBFile is the SQLite file created inside the work directory.
const DefaultDBFile = "petshop.db"

// ShopConfig holds storefront specific settings.
type ShopConfig struct {
	// WorkDir holds .env and the default database file.
	WorkDir string `yaml:"work_dir" envconfig:"BOT_DIR"`
	// Seed is inserted into an empty catalog on startup.
	Seed []model.NewItem `yaml:"seed" ignored:"true"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Shop     ShopConfig          `yaml:"shop"`
}

// CoreConfig implements cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// Load reads <BOT_DIR>/.env, the optional YAML file at path and the environment, in
// that order of increasing precedence for the environment.
func Load(path string) (*Config, error) {
	workDir := strings.TrimSpace(os.Getenv("BOT_DIR"))
	if workDir == "" {
		workDir = "."
	}
	if err := godotenv.Load(filepath.Join(workDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := coreconfig.ReadYAML(path, &cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		cfg.Telegram.Token = os.Getenv("TOKEN")
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates cfg and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Shop.WorkDir) == "" {
		cfg.Shop.WorkDir = "."
	}
	if err := cfg.Database.Normalize(filepath.Join(cfg.Shop.WorkDir, DefaultDBFile)); err != nil {
		return err
	}
	for i, item := range cfg.Shop.Seed {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("shop.seed[%d]: name is required", i)
		}
		c, err := model.ParseCategory(string(item.Category))
		if err != nil {
			return fmt.Errorf("shop.seed[%d]: %w", i, err)
		}
		cfg.Shop.Seed[i].Category = c
	}
	return nil
}
