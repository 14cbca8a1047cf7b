// Package config loads service configuration from a YAML file with
// environment-variable overrides. The file is optional: a deployment may
// provide everything through the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DevJWTSecret is the fallback signing secret outside production.
	DevJWTSecret = "fallback-secret-key-for-development"

	defaultPort          = 5000
	defaultUploadDir     = "uploads"
	defaultAdminPassword = "admin123"
)

// Config holds every recognized option of the portal backend.
type Config struct {
	Port        int    `yaml:"PORT"`
	Environment string `yaml:"ENVIRONMENT"`

	DBHost     string `yaml:"DB_HOST"`
	DBPort     int    `yaml:"DB_PORT"`
	DBUser     string `yaml:"DB_USER"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBName     string `yaml:"DB_NAME"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`

	JWTSecret     string `yaml:"JWT_SECRET"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`

	CORSOrigins []string `yaml:"CORS_ORIGINS"`

	// UploadMode selects the resume storage backend: disk, disk-abs or inline.
	UploadMode string `yaml:"UPLOAD_MODE"`
	UploadDir  string `yaml:"UPLOAD_DIR"`
}

// Load reads the YAML file at path (skipped when absent), applies environment
// overrides, and fills defaults. It fails only on a malformed file or an
// unusable option combination.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:          defaultPort,
		Environment:   "development",
		DBHost:        "localhost",
		DBPort:        5432,
		DBSSLMode:     "disable",
		AdminPassword: defaultAdminPassword,
		UploadMode:    "disk",
		UploadDir:     defaultUploadDir,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.JWTSecret == "" {
		if cfg.Production() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = DevJWTSecret
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Environment, "ENVIRONMENT")
	setInt(&cfg.Port, "PORT")
	setString(&cfg.DBHost, "DB_HOST")
	setInt(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSLMODE")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	setString(&cfg.UploadMode, "UPLOAD_MODE")
	setString(&cfg.UploadDir, "UPLOAD_DIR")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Production reports whether the environment flag selects production
// behavior (internal error detail suppressed in responses).
func (c *Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}
