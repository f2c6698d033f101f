package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Port      string `yaml:"port" validate:"required"`
	DBPath    string `yaml:"dbPath" validate:"required"`
	JWTSecret string `yaml:"jwtSecret" validate:"required"`

	// Projection defaults for the study area
	UTMZone     int  `yaml:"utmZone" validate:"gte=1,lte=60"`
	UTMNorthern bool `yaml:"utmNorthern"`

	// Basemap tile source ({z}/{x}/{y} template)
	TileURL string `yaml:"tileURL" validate:"omitempty,startswith=http"`

	// Directory map/plot images are written to
	OutputDir string `yaml:"outputDir" validate:"required"`
}

// Defaults for fields not set by file or environment
var defaults = Config{
	Port:        ":8080",
	DBPath:      "./data/tracks.db",
	JWTSecret:   "change-me-in-production",
	UTMZone:     36,
	UTMNorthern: true,
	TileURL:     "https://tile.openstreetmap.org/{z}/{x}/{y}.png",
	OutputDir:   "./output",
}

// Load reads the config file (if present), applies environment overrides
// and validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TILE_URL"); v != "" {
		cfg.TileURL = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("UTM_ZONE"); v != "" {
		if zone, err := strconv.Atoi(v); err == nil {
			cfg.UTMZone = zone
		}
	}
}
