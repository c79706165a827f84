// Package config reads the nextdeploy.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up at the workspace root.
const FileName = "nextdeploy.yaml"

// Config represents the nextdeploy.yaml configuration file.
type Config struct {
	// App identifies the application being deployed
	App AppConfig `yaml:"app"`

	// Sites are the Next.js sites in the workspace
	Sites []Site `yaml:"sites"`

	// Build holds build-wide settings
	Build BuildConfig `yaml:"build,omitempty"`

	// Links declares resources whose properties are injected into builds
	Links map[string]map[string]any `yaml:"links,omitempty"`

	// Upload configures the static asset target
	Upload UploadConfig `yaml:"upload,omitempty"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `yaml:"name"`
	Stage string `yaml:"stage"`
}

// Site represents one deployable Next.js site.
type Site struct {
	Name         string            `yaml:"name"`
	Path         string            `yaml:"path"`
	BuildCommand string            `yaml:"build_command,omitempty"`
	Env          map[string]string `yaml:"env,omitempty"`
	Links        []string          `yaml:"links,omitempty"`
}

// BuildConfig holds build orchestration settings.
type BuildConfig struct {
	// Concurrency caps simultaneous builds across all sites
	Concurrency int64 `yaml:"concurrency,omitempty"`

	// OpenNextVersion pins the open-next release used to build
	OpenNextVersion string `yaml:"open_next_version,omitempty"`
}

// UploadConfig holds the static asset upload target.
type UploadConfig struct {
	Provider  string `yaml:"provider,omitempty"` // s3 or minio
	Bucket    string `yaml:"bucket,omitempty"`
	Region    string `yaml:"region,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	PublicURL string `yaml:"public_url,omitempty"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app.name is required")
	}

	siteNames := make(map[string]bool)
	for _, site := range c.Sites {
		if site.Name == "" {
			return fmt.Errorf("site name is required")
		}
		if siteNames[site.Name] {
			return fmt.Errorf("duplicate site name: %s", site.Name)
		}
		siteNames[site.Name] = true

		if site.Path == "" {
			return fmt.Errorf("site %s: path is required", site.Name)
		}
		for _, ref := range site.Links {
			if _, ok := c.Links[ref]; !ok {
				return fmt.Errorf("site %s: unknown link %q", site.Name, ref)
			}
		}
	}

	return nil
}

// applyDefaults sets default values for missing fields.
func (c *Config) applyDefaults() {
	if c.App.Stage == "" {
		c.App.Stage = "dev"
	}
	if c.Build.Concurrency <= 0 {
		c.Build.Concurrency = 4
	}
	if c.Upload.Provider == "" {
		c.Upload.Provider = "s3"
	}
}

// GetSite finds a site by name.
func (c *Config) GetSite(name string) (*Site, error) {
	for _, site := range c.Sites {
		if site.Name == name {
			return &site, nil
		}
	}
	return nil, fmt.Errorf("site not found: %s", name)
}
