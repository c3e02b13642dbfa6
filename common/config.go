package common

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the server
const EnvPrefix = "CSV2JSON"

const (
	DefaultPort        = "8080"
	DefaultUploadsDir  = "./uploads"
	DefaultMaxUploadMB = 32
)

// ServerConfig holds the settings of the HTTP service
type ServerConfig struct {
	Port        string
	JWTSecret   string
	Database    string
	UploadsDir  string
	MaxUploadMB int64
}

// LoadServerConfig resolves the server settings from flags, CSV2JSON_*
// environment variables, and defaults, in that order of precedence.
// Flag names use dashes; env names use underscores (jwt-secret -> CSV2JSON_JWT_SECRET).
func LoadServerConfig(flags *pflag.FlagSet) (ServerConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", DefaultPort)
	v.SetDefault("uploads-dir", DefaultUploadsDir)
	v.SetDefault("max-upload-mb", DefaultMaxUploadMB)

	// PORT is honoured for platforms that inject it
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return ServerConfig{}, err
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return ServerConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	cfg := ServerConfig{
		Port:        v.GetString("port"),
		JWTSecret:   v.GetString("jwt-secret"),
		Database:    v.GetString("database"),
		UploadsDir:  v.GetString("uploads-dir"),
		MaxUploadMB: v.GetInt64("max-upload-mb"),
	}
	if cfg.MaxUploadMB <= 0 {
		return cfg, fmt.Errorf("max-upload-mb must be positive, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}
