package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolsFile is the external YAML format for tool overrides
type ToolsFile struct {
	ReadOnly       *bool           `yaml:"read_only"`       // can only tighten the environment setting
	DefaultProject string          `yaml:"default_project"` // used when GITLAB_PROJECT_ID is unset
	Toolsets       map[string]bool `yaml:"toolsets"`        // toolset name -> enabled
	DisabledTools  []string        `yaml:"disabled_tools"`
}

// LoadToolsConfig loads tool overrides from YAML.
// The file must exist and be valid once a path is configured.
func LoadToolsConfig(configPath string) (*ToolsFile, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tools config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tools config file %s: %w", configPath, err)
	}

	var file ToolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tools config YAML %s: %w", configPath, err)
	}

	if err := ValidateToolsConfig(&file); err != nil {
		return nil, fmt.Errorf("invalid tools configuration in %s: %w", configPath, err)
	}

	return &file, nil
}

// ValidateToolsConfig validates the tool overrides
func ValidateToolsConfig(file *ToolsFile) error {
	if file == nil {
		return fmt.Errorf("tools config is nil")
	}

	for name := range file.Toolsets {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("toolset entry missing name")
		}
	}

	for i, tool := range file.DisabledTools {
		if strings.TrimSpace(tool) == "" {
			return fmt.Errorf("disabled tool at index %d missing name", i)
		}
	}

	return nil
}

func (f *ToolsFile) applyTo(cfg *Config) {
	if f.ReadOnly != nil && *f.ReadOnly {
		cfg.GitLab.ReadOnly = true
	}

	if cfg.GitLab.DefaultProjectID == "" {
		cfg.GitLab.DefaultProjectID = strings.TrimSpace(f.DefaultProject)
	}

	for toolset, enabled := range f.Toolsets {
		if !enabled {
			cfg.Tools.DisabledToolsets = appendUnique(cfg.Tools.DisabledToolsets, toolset)
		}
	}

	for _, tool := range f.DisabledTools {
		cfg.Tools.DisabledTools = appendUnique(cfg.Tools.DisabledTools, strings.TrimSpace(tool))
	}
}
