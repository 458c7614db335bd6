package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppDirectoryName is the per-user application data directory name.
const AppDirectoryName = "chitchat"

// FileName is the optional config file inside the data directory.
const FileName = "config.json"

type Config struct {
	APIBaseURL      string `json:"api_url"`          // REST endpoint base, e.g. http://localhost:8000
	ChannelURL      string `json:"channel_url"`      // websocket endpoint, e.g. ws://localhost:8000/ws
	CloudinaryCloud string `json:"cloudinary_cloud"` // image-host cloud name for avatar uploads
	UploadPreset    string `json:"upload_preset"`    // image-host unsigned upload preset
	DataDir         string `json:"-"`                // where session state is persisted
}

// Load builds the configuration from defaults, the config file in the data
// directory when one exists, and environment overrides, in that order.
func Load() (*Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		APIBaseURL: "http://localhost:8000",
		ChannelURL: "ws://localhost:8000/ws",
		DataDir:    dataDir,
	}

	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return nil, err
	}

	if v := os.Getenv("CHITCHAT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CHITCHAT_CHANNEL_URL"); v != "" {
		cfg.ChannelURL = v
	}
	if v := os.Getenv("CHITCHAT_CLOUDINARY_CLOUD"); v != "" {
		cfg.CloudinaryCloud = v
	}
	if v := os.Getenv("CHITCHAT_UPLOAD_PRESET"); v != "" {
		cfg.UploadPreset = v
	}

	return cfg, nil
}

// loadFile merges a config file into cfg. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.APIBaseURL != "" {
		c.APIBaseURL = file.APIBaseURL
	}
	if file.ChannelURL != "" {
		c.ChannelURL = file.ChannelURL
	}
	if file.CloudinaryCloud != "" {
		c.CloudinaryCloud = file.CloudinaryCloud
	}
	if file.UploadPreset != "" {
		c.UploadPreset = file.UploadPreset
	}
	return nil
}

// Save writes the configuration file into the data directory.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.DataDir, FileName), raw, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// resolveDataDir returns the per-user state directory, honoring
// CHITCHAT_DATA_DIR as an explicit override.
func resolveDataDir() (string, error) {
	if override := os.Getenv("CHITCHAT_DATA_DIR"); override != "" {
		return override, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, AppDirectoryName), nil
}
