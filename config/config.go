package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spiffcs/goodfirst/internal/constants"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat string `yaml:"default_format,omitempty"`

	// Top-level config sections
	Server      *ServerOverrides      `yaml:"server,omitempty"`
	GitHub      *GitHubOverrides      `yaml:"github,omitempty"`
	Telemetry   *TelemetryOverrides   `yaml:"telemetry,omitempty"`
	Maintenance *MaintenanceOverrides `yaml:"maintenance,omitempty"`
}

// ServerOverrides customizes the HTTP gateway
type ServerOverrides struct {
	Addr          *string        `yaml:"addr,omitempty"`
	ReadTimeout   *time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout  *time.Duration `yaml:"write_timeout,omitempty"`
	IdleTimeout   *time.Duration `yaml:"idle_timeout,omitempty"`
	EnrichWorkers *int           `yaml:"enrich_workers,omitempty"`
	LogFormat     *string        `yaml:"log_format,omitempty"`
}

// GitHubOverrides customizes the upstream API
type GitHubOverrides struct {
	APIURL *string `yaml:"api_url,omitempty"`
}

// TelemetryOverrides configures OTLP trace export
type TelemetryOverrides struct {
	OTLPEndpoint *string `yaml:"otlp_endpoint,omitempty"`
	ServiceName  *string `yaml:"service_name,omitempty"`
}

// MaintenanceOverrides allows customizing the maintenance score heuristic
type MaintenanceOverrides struct {
	ActiveBonus             *int `yaml:"active_bonus,omitempty"`
	PopularBonus            *int `yaml:"popular_bonus,omitempty"`
	PopularStarsThreshold   *int `yaml:"popular_stars_threshold,omitempty"`
	ForksBonus              *int `yaml:"forks_bonus,omitempty"`
	ForksThreshold          *int `yaml:"forks_threshold,omitempty"`
	FollowersBonus          *int `yaml:"followers_bonus,omitempty"`
	FollowersThreshold      *int `yaml:"followers_threshold,omitempty"`
	NotArchivedBonus        *int `yaml:"not_archived_bonus,omitempty"`
	MaxScore                *int `yaml:"max_score,omitempty"`
	DefaultActiveWindowDays *int `yaml:"default_active_window_days,omitempty"`
}

// MaintenanceWeights defines the complete set of maintenance scoring weights
type MaintenanceWeights struct {
	ActiveBonus           int
	PopularBonus          int
	PopularStarsThreshold int
	ForksBonus            int
	ForksThreshold        int
	FollowersBonus        int
	FollowersThreshold    int
	NotArchivedBonus      int

	// MaxScore caps the summed bonuses
	MaxScore int

	// DefaultActiveWindowDays applies when a request has no activeWithinDays
	DefaultActiveWindowDays int
}

// DefaultMaintenanceWeights returns the default maintenance scoring weights
func DefaultMaintenanceWeights() MaintenanceWeights {
	return MaintenanceWeights{
		ActiveBonus:           40,
		PopularBonus:          20,
		PopularStarsThreshold: 50,
		ForksBonus:            15,
		ForksThreshold:        10,
		FollowersBonus:        15,
		FollowersThreshold:    50,
		NotArchivedBonus:      10,

		MaxScore: 100,

		DefaultActiveWindowDays: constants.DefaultActivityWindowDays,
	}
}

// GetMaintenanceWeights returns maintenance weights with user overrides merged with defaults
func (c *Config) GetMaintenanceWeights() MaintenanceWeights {
	weights := DefaultMaintenanceWeights()

	m := c.Maintenance
	if m == nil {
		return weights
	}

	apply(&weights.ActiveBonus, m.ActiveBonus)
	apply(&weights.PopularBonus, m.PopularBonus)
	apply(&weights.PopularStarsThreshold, m.PopularStarsThreshold)
	apply(&weights.ForksBonus, m.ForksBonus)
	apply(&weights.ForksThreshold, m.ForksThreshold)
	apply(&weights.FollowersBonus, m.FollowersBonus)
	apply(&weights.FollowersThreshold, m.FollowersThreshold)
	apply(&weights.NotArchivedBonus, m.NotArchivedBonus)
	apply(&weights.MaxScore, m.MaxScore)
	apply(&weights.DefaultActiveWindowDays, m.DefaultActiveWindowDays)

	return weights
}

// ServerSettings is the resolved runtime configuration of the gateway
type ServerSettings struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	EnrichWorkers int
	LogFormat     string
	APIURL        string
	OTLPEndpoint  string
	ServiceName   string
}

// DefaultServerSettings returns the default gateway settings
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Addr:          constants.DefaultListenAddr,
		ReadTimeout:   constants.DefaultReadTimeout,
		WriteTimeout:  constants.DefaultWriteTimeout,
		IdleTimeout:   constants.DefaultIdleTimeout,
		EnrichWorkers: constants.DefaultEnrichWorkers,
		LogFormat:     "text",
		APIURL:        constants.DefaultAPIURL,
		ServiceName:   constants.DefaultServiceName,
	}
}

// GetServerSettings returns gateway settings with user overrides merged with defaults
func (c *Config) GetServerSettings() ServerSettings {
	s := DefaultServerSettings()

	if srv := c.Server; srv != nil {
		apply(&s.Addr, srv.Addr)
		apply(&s.ReadTimeout, srv.ReadTimeout)
		apply(&s.WriteTimeout, srv.WriteTimeout)
		apply(&s.IdleTimeout, srv.IdleTimeout)
		apply(&s.EnrichWorkers, srv.EnrichWorkers)
		apply(&s.LogFormat, srv.LogFormat)
	}
	if gh := c.GitHub; gh != nil {
		apply(&s.APIURL, gh.APIURL)
	}
	if tel := c.Telemetry; tel != nil {
		apply(&s.OTLPEndpoint, tel.OTLPEndpoint)
		apply(&s.ServiceName, tel.ServiceName)
	}

	return s
}

// apply copies an override onto dst when it is set
func apply[T any](dst *T, override *T) {
	if override != nil {
		*dst = *override
	}
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".goodfirst"
	}
	return filepath.Join(configDir, "goodfirst")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".goodfirst.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from XDG config directory, then merges
// any local .goodfirst.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	result.Server = mergeServer(global.Server, local.Server)
	result.GitHub = mergeGitHub(global.GitHub, local.GitHub)
	result.Telemetry = mergeTelemetry(global.Telemetry, local.Telemetry)
	result.Maintenance = mergeMaintenance(global.Maintenance, local.Maintenance)

	return result
}

// pick returns local when set, otherwise global
func pick[T any](global, local *T) *T {
	if local != nil {
		return local
	}
	return global
}

func mergeServer(global, local *ServerOverrides) *ServerOverrides {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &ServerOverrides{
		Addr:          pick(global.Addr, local.Addr),
		ReadTimeout:   pick(global.ReadTimeout, local.ReadTimeout),
		WriteTimeout:  pick(global.WriteTimeout, local.WriteTimeout),
		IdleTimeout:   pick(global.IdleTimeout, local.IdleTimeout),
		EnrichWorkers: pick(global.EnrichWorkers, local.EnrichWorkers),
		LogFormat:     pick(global.LogFormat, local.LogFormat),
	}
}

func mergeGitHub(global, local *GitHubOverrides) *GitHubOverrides {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &GitHubOverrides{
		APIURL: pick(global.APIURL, local.APIURL),
	}
}

func mergeTelemetry(global, local *TelemetryOverrides) *TelemetryOverrides {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &TelemetryOverrides{
		OTLPEndpoint: pick(global.OTLPEndpoint, local.OTLPEndpoint),
		ServiceName:  pick(global.ServiceName, local.ServiceName),
	}
}

func mergeMaintenance(global, local *MaintenanceOverrides) *MaintenanceOverrides {
	if global == nil {
		return local
	}
	if local == nil {
		return global
	}
	return &MaintenanceOverrides{
		ActiveBonus:             pick(global.ActiveBonus, local.ActiveBonus),
		PopularBonus:            pick(global.PopularBonus, local.PopularBonus),
		PopularStarsThreshold:   pick(global.PopularStarsThreshold, local.PopularStarsThreshold),
		ForksBonus:              pick(global.ForksBonus, local.ForksBonus),
		ForksThreshold:          pick(global.ForksThreshold, local.ForksThreshold),
		FollowersBonus:          pick(global.FollowersBonus, local.FollowersBonus),
		FollowersThreshold:      pick(global.FollowersThreshold, local.FollowersThreshold),
		NotArchivedBonus:        pick(global.NotArchivedBonus, local.NotArchivedBonus),
		MaxScore:                pick(global.MaxScore, local.MaxScore),
		DefaultActiveWindowDays: pick(global.DefaultActiveWindowDays, local.DefaultActiveWindowDays),
	}
}

// GetGitHubToken returns the GitHub token from the GITHUB_TOKEN environment variable.
// Tokens are only read from the environment, never from config files.
func (c *Config) GetGitHubToken() string {
	return os.Getenv("GITHUB_TOKEN")
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	weights := DefaultMaintenanceWeights()
	settings := DefaultServerSettings()

	return &Config{
		DefaultFormat: "table",
		Server: &ServerOverrides{
			Addr:          &settings.Addr,
			ReadTimeout:   &settings.ReadTimeout,
			WriteTimeout:  &settings.WriteTimeout,
			IdleTimeout:   &settings.IdleTimeout,
			EnrichWorkers: &settings.EnrichWorkers,
			LogFormat:     &settings.LogFormat,
		},
		GitHub: &GitHubOverrides{
			APIURL: &settings.APIURL,
		},
		Telemetry: &TelemetryOverrides{
			OTLPEndpoint: &settings.OTLPEndpoint,
			ServiceName:  &settings.ServiceName,
		},
		Maintenance: &MaintenanceOverrides{
			ActiveBonus:             &weights.ActiveBonus,
			PopularBonus:            &weights.PopularBonus,
			PopularStarsThreshold:   &weights.PopularStarsThreshold,
			ForksBonus:              &weights.ForksBonus,
			ForksThreshold:          &weights.ForksThreshold,
			FollowersBonus:          &weights.FollowersBonus,
			FollowersThreshold:      &weights.FollowersThreshold,
			NotArchivedBonus:        &weights.NotArchivedBonus,
			MaxScore:                &weights.MaxScore,
			DefaultActiveWindowDays: &weights.DefaultActiveWindowDays,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// SetDefaultFormat sets the default output format in the global config file.
// Only the global file is rewritten so local overrides never leak into it.
func SetDefaultFormat(format string) error {
	path := ConfigPath()

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse global config file: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read global config file: %w", err)
	}

	cfg.DefaultFormat = format
	content, err := cfg.ToYAML()
	if err != nil {
		return err
	}
	return SaveTo(path, content)
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# goodfirst configuration file
# See: goodfirst config defaults  (for all available options)

# Output format for 'goodfirst search': table, json or markdown
default_format: table

# Gateway settings (optional)
# server:
#   addr: ":3000"
#   enrich_workers: 20
#   log_format: json

# GitHub Enterprise (optional)
# github:
#   api_url: https://github.example.com/api/v3/

# Override maintenance scoring (optional)
# maintenance:
#   popular_stars_threshold: 100
#   default_active_window_days: 90
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
