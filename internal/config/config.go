package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	DBPath       string
	MetadataPath string
	OGDBaseURL   string
	FetchTimeout time.Duration
	JWTSecret    string
	Years        []int
}

// fileConfig mirrors Config for yaml decoding; durations are
// expressed as strings like "60s".
type fileConfig struct {
	Port         string `yaml:"port"`
	DBPath       string `yaml:"db_path"`
	MetadataPath string `yaml:"metadata_path"`
	OGDBaseURL   string `yaml:"ogd_base_url"`
	FetchTimeout string `yaml:"fetch_timeout"`
	JWTSecret    string `yaml:"jwt_secret"`
	Years        []int  `yaml:"years"`
}

// Load reads the optional yaml config file and applies environment
// overrides on top. Missing values fall back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         ":8080",
		DBPath:       "./data/traffic.db",
		MetadataPath: "./data/metadata.json",
		OGDBaseURL:   "https://data.stadt-zuerich.ch/dataset/ugz_verkehrsdaten_stundenwerte_rosengartenbruecke/download/",
		FetchTimeout: 60 * time.Second,
		JWTSecret:    "change-me-in-production",
		Years:        []int{time.Now().Year()},
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if fc.Port != "" {
			cfg.Port = fc.Port
		}
		if fc.DBPath != "" {
			cfg.DBPath = fc.DBPath
		}
		if fc.MetadataPath != "" {
			cfg.MetadataPath = fc.MetadataPath
		}
		if fc.OGDBaseURL != "" {
			cfg.OGDBaseURL = fc.OGDBaseURL
		}
		if fc.FetchTimeout != "" {
			d, err := time.ParseDuration(fc.FetchTimeout)
			if err != nil {
				return nil, fmt.Errorf("invalid fetch_timeout in %s: %w", path, err)
			}
			cfg.FetchTimeout = d
		}
		if fc.JWTSecret != "" {
			cfg.JWTSecret = fc.JWTSecret
		}
		if len(fc.Years) > 0 {
			cfg.Years = fc.Years
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if !strings.HasPrefix(v, ":") {
			v = ":" + v
		}
		cfg.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("METADATA_PATH"); v != "" {
		cfg.MetadataPath = v
	}
	if v := os.Getenv("OGD_BASE_URL"); v != "" {
		cfg.OGDBaseURL = v
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("YEARS"); v != "" {
		var years []int
		for _, part := range strings.Split(v, ",") {
			if y, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				years = append(years, y)
			}
		}
		if len(years) > 0 {
			cfg.Years = years
		}
	}
}
