// Package config provides the editor's persisted configuration schema.
package config

import "regexp"

var configPathSegmentRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config represents the complete configuration structure (spec §10.1).
type Config struct {
	Meta struct {
		ConfigVersion string `yaml:"config-version"`
	} `yaml:"meta"`

	Display struct {
		TabWidth          int `yaml:"tab-width"`
		FillColumn        int `yaml:"fill-column"`
		JumpColumnPercent int `yaml:"jump-column-percent"`
	} `yaml:"display"`

	Keybindings struct {
		Profile     string            `yaml:"profile"`
		UserProfile map[string]string `yaml:"user-profile,omitempty"`
	} `yaml:"keybindings"`

	Startup struct {
		Modes []string `yaml:"modes,omitempty"`
	} `yaml:"startup"`

	FileIO struct {
		BackupExtension string `yaml:"backup-extension"`
		SafeSave        bool   `yaml:"safe-save"`
	} `yaml:"file-io"`

	Search struct {
		IgnoreCase bool `yaml:"ignore-case"`
		Regex      bool `yaml:"regex"`
		Multiline  bool `yaml:"multiline"`
	} `yaml:"search"`

	Rings struct {
		KillCapacity    int `yaml:"kill-capacity"`
		DeleteCapacity  int `yaml:"delete-capacity"`
		SearchCapacity  int `yaml:"search-capacity"`
		ReplaceCapacity int `yaml:"replace-capacity"`
	} `yaml:"rings"`

	Macro struct {
		MaxDepth        int `yaml:"max-depth"`
		MaxLoopIterations int `yaml:"max-loop-iterations"`
	} `yaml:"macro"`
}

// Manager handles configuration loading and saving.
type Manager struct {
	config     *Config
	configPath string
}

// NewManager creates a configuration manager seeded with defaults.
func NewManager() *Manager {
	return &Manager{config: defaultConfig()}
}

// GetConfig returns the current configuration.
func (cm *Manager) GetConfig() *Config {
	return cm.config
}

// defaultConfig returns the default configuration values.
func defaultConfig() *Config {
	c := &Config{}
	c.Meta.ConfigVersion = "1.0"

	c.Display.TabWidth = 8
	c.Display.FillColumn = 72
	c.Display.JumpColumnPercent = 20

	c.Keybindings.Profile = "emacs"

	c.FileIO.BackupExtension = "~"
	c.FileIO.SafeSave = true

	c.Search.IgnoreCase = false
	c.Search.Regex = false
	c.Search.Multiline = false

	c.Rings.KillCapacity = 20
	c.Rings.DeleteCapacity = 20
	c.Rings.SearchCapacity = 20
	c.Rings.ReplaceCapacity = 20

	c.Macro.MaxDepth = 100
	c.Macro.MaxLoopIterations = 0 // 0 means unbounded

	return c
}
