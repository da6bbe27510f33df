/*
Package config manages the TOML config for codeserve.

Config is resolved in order: a path given with -config, the default file under
the user config dir (created with defaults when missing), then built-in defaults.
A file that doesn't decode cleanly is recovered section by section, and fields
that can't be read keep their defaults.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/charmbracelet/log"
)

const (
	appDir   = "codeserve"
	fileName = "config.toml"
)

// Config holds the entire config structure
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Editor  EditorConfig  `toml:"editor"`
	Symbols SymbolsConfig `toml:"symbols"`
	CLI     CliConfig     `toml:"cli"`
}

// ServerConfig has ranking caps and IPC limits.
type ServerConfig struct {
	MaxLimit   int  `toml:"max_limit"`
	EmptyLimit int  `toml:"empty_limit"`
	MinPrefix  int  `toml:"min_prefix"`
	MaxPrefix  int  `toml:"max_prefix"`
	Watch      bool `toml:"watch"`
}

// EditorConfig holds the monospace metrics used to place the dropdown.
type EditorConfig struct {
	CharWidth  int `toml:"char_width"`
	LineHeight int `toml:"line_height"`
	AnchorGap  int `toml:"anchor_gap"`
	ListWidth  int `toml:"list_width"`
	ListHeight int `toml:"list_height"`
}

// SymbolsConfig controls user symbol extraction.
type SymbolsConfig struct {
	Dedupe bool `toml:"dedupe"`
}

// CliConfig holds cli console options.
type CliConfig struct {
	DefaultLanguage string `toml:"default_language"`
	Color           bool   `toml:"color"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:   15,
			EmptyLimit: 10,
			MinPrefix:  0,
			MaxPrefix:  60,
			Watch:      true,
		},
		Editor: EditorConfig{
			CharWidth:  8,
			LineHeight: 20,
			AnchorGap:  5,
			ListWidth:  320,
			ListHeight: 320,
		},
		Symbols: SymbolsConfig{
			Dedupe: false,
		},
		CLI: CliConfig{
			DefaultLanguage: "html",
			Color:           true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. os.UserConfigDir()/codeserve
// 2. ~/.config/codeserve
// 3. Current executable dir
func GetConfigDir() (string, error) {
	if userDir, err := os.UserConfigDir(); err == nil {
		path := filepath.Join(userDir, appDir)
		if result := utils.CheckDirStatus(path); result.Writable {
			return path, nil
		}
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(homeDir, ".config", appDir)
		if result := utils.CheckDirStatus(path); result.Writable {
			return path, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/codeserve/config.toml
// 3. Builtin defaults
//
// The returned path is empty when builtin defaults are in use.
func LoadConfigWithPriority(customPath string) (*Config, string, error) {
	if customPath != "" {
		if _, statErr := os.Stat(customPath); statErr == nil {
			cfg, err := LoadConfig(customPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customPath)
				return cfg, customPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	cfg, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return cfg, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(path string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using built-in defaults...", path, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, path); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", path, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", path)
		return cfg, nil
	}
	return LoadConfig(path)
}

// LoadConfig loads from a TOML file. Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return tryPartialParse(path)
	}
	cfg.normalize()
	return cfg, nil
}

// tryPartialParse keeps every readable value of a file that failed to decode.
func tryPartialParse(path string) (*Config, error) {
	cfg := DefaultConfig()

	sections, err := utils.ParseTOMLSections(path)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", path, err)
		return cfg, nil
	}

	if s, ok := utils.ExtractSection(sections, "server"); ok {
		extractServerConfig(s, &cfg.Server)
	}
	if s, ok := utils.ExtractSection(sections, "editor"); ok {
		extractEditorConfig(s, &cfg.Editor)
	}
	if s, ok := utils.ExtractSection(sections, "symbols"); ok {
		if val, ok := utils.ExtractBool(s, "dedupe"); ok {
			cfg.Symbols.Dedupe = val
		}
	}
	if s, ok := utils.ExtractSection(sections, "cli"); ok {
		if val, ok := utils.ExtractString(s, "default_language"); ok {
			cfg.CLI.DefaultLanguage = val
		}
		if val, ok := utils.ExtractBool(s, "color"); ok {
			cfg.CLI.Color = val
		}
	}
	cfg.normalize()
	return cfg, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt(data, "empty_limit"); ok {
		server.EmptyLimit = val
	}
	if val, ok := utils.ExtractInt(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		server.Watch = val
	}
}

func extractEditorConfig(data map[string]any, editor *EditorConfig) {
	if val, ok := utils.ExtractInt(data, "char_width"); ok {
		editor.CharWidth = val
	}
	if val, ok := utils.ExtractInt(data, "line_height"); ok {
		editor.LineHeight = val
	}
	if val, ok := utils.ExtractInt(data, "anchor_gap"); ok {
		editor.AnchorGap = val
	}
	if val, ok := utils.ExtractInt(data, "list_width"); ok {
		editor.ListWidth = val
	}
	if val, ok := utils.ExtractInt(data, "list_height"); ok {
		editor.ListHeight = val
	}
}

// normalize replaces values that would break ranking or placement with defaults.
// The default result caps are also the upper bounds.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Server.MaxLimit <= 0 {
		log.Warnf("server.max_limit must be positive, using %d", def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	} else if c.Server.MaxLimit > def.Server.MaxLimit {
		log.Warnf("server.max_limit %d above the cap, using %d", c.Server.MaxLimit, def.Server.MaxLimit)
		c.Server.MaxLimit = def.Server.MaxLimit
	}
	if c.Server.EmptyLimit <= 0 {
		log.Warnf("server.empty_limit must be positive, using %d", def.Server.EmptyLimit)
		c.Server.EmptyLimit = def.Server.EmptyLimit
	} else if c.Server.EmptyLimit > def.Server.EmptyLimit {
		log.Warnf("server.empty_limit %d above the cap, using %d", c.Server.EmptyLimit, def.Server.EmptyLimit)
		c.Server.EmptyLimit = def.Server.EmptyLimit
	}
	if c.Server.MinPrefix < 0 {
		c.Server.MinPrefix = 0
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("server.max_prefix below min_prefix, using %d", def.Server.MaxPrefix)
		c.Server.MaxPrefix = def.Server.MaxPrefix
	}
	if c.Editor.CharWidth <= 0 {
		c.Editor.CharWidth = def.Editor.CharWidth
	}
	if c.Editor.LineHeight <= 0 {
		c.Editor.LineHeight = def.Editor.LineHeight
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	path, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), path)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(path string) string {
	if path == "" {
		return "builtin"
	}
	return utils.GetAbsolutePath(path)
}

// SaveConfig saves into a TOML file
func SaveConfig(cfg *Config, path string) error {
	return utils.SaveTOMLFile(cfg, path)
}

// Update changes the ranking caps and saves to file. Nil values are left as is.
// An empty path updates the in-memory config only.
func (c *Config) Update(path string, maxLimit, emptyLimit, minPrefix, maxPrefix *int, dedupe *bool) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if emptyLimit != nil {
		server.EmptyLimit = *emptyLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxPrefix != nil {
		server.MaxPrefix = *maxPrefix
	}
	if dedupe != nil {
		c.Symbols.Dedupe = *dedupe
	}
	c.normalize()
	if path == "" {
		return nil
	}
	return SaveConfig(c, path)
}
