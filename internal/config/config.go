package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/folkways/internal/logging"
	"github.com/danmuck/folkways/internal/protocol"
	"github.com/danmuck/folkways/internal/protocol/frame"
)

// FolkdConfig is the runtime configuration of the inspection daemon.
type FolkdConfig struct {
	ID             string
	Addr           string
	CorsOrigins    []string
	MaxBodyBytes   uint32
	MaxFooterBytes uint16
	LogLevel       string
	LogFile        string
}

// folkd config.toml key mapping.
type folkdFileConfig struct {
	ID             string   `toml:"id"`
	Addr           string   `toml:"addr"`
	CorsOrigins    []string `toml:"cors_origins"`
	MaxBodyBytes   int64    `toml:"max_body_bytes"`
	MaxFooterBytes int64    `toml:"max_footer_bytes"`
	LogLevel       string   `toml:"log_level"`
	LogFile        string   `toml:"log_file"`
}

func DefaultFolkdConfig() FolkdConfig {
	return FolkdConfig{
		ID:             "folkd",
		Addr:           ":9400",
		CorsOrigins:    []string{"http://localhost:3000"},
		MaxBodyBytes:   protocol.MaxBodySize,
		MaxFooterBytes: protocol.MaxFooterSize,
		LogLevel:       "info",
	}
}

// Limits returns the frame limits configured for the daemon.
func (c FolkdConfig) Limits() frame.Limits {
	return frame.Limits{
		MaxBodyBytes:   c.MaxBodyBytes,
		MaxFooterBytes: c.MaxFooterBytes,
	}
}

// LoadFolkdConfig overlays the keys defined in path onto DefaultFolkdConfig.
func LoadFolkdConfig(path string) (FolkdConfig, error) {
	cfg := DefaultFolkdConfig()

	var raw folkdFileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return FolkdConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FolkdConfig{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("id") {
		cfg.ID = strings.TrimSpace(raw.ID)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("max_body_bytes") {
		if raw.MaxBodyBytes < 0 || raw.MaxBodyBytes > math.MaxUint32 {
			return FolkdConfig{}, fmt.Errorf("config invalid (%s): max_body_bytes out of range: %d", path, raw.MaxBodyBytes)
		}
		cfg.MaxBodyBytes = uint32(raw.MaxBodyBytes)
	}
	if meta.IsDefined("max_footer_bytes") {
		if raw.MaxFooterBytes < 0 || raw.MaxFooterBytes > math.MaxUint16 {
			return FolkdConfig{}, fmt.Errorf("config invalid (%s): max_footer_bytes out of range: %d", path, raw.MaxFooterBytes)
		}
		cfg.MaxFooterBytes = uint16(raw.MaxFooterBytes)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}

	if err := ValidateFolkdConfig(cfg); err != nil {
		return FolkdConfig{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func ValidateFolkdConfig(cfg FolkdConfig) error {
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("folkd config missing id")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("folkd config missing addr")
	}
	if cfg.MaxBodyBytes == 0 {
		return fmt.Errorf("max_body_bytes must be positive")
	}
	for i, origin := range cfg.CorsOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("cors_origins[%d] is empty", i)
		}
	}
	if strings.TrimSpace(cfg.LogLevel) != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}
