package config

import "github.com/nazmul-nhb/nhb-express/pkg/models"

// Config is the merged user configuration.
type Config struct {
	// Author is written into every generated package.json.
	Author models.Author `mapstructure:"author"`
	// License is the SPDX identifier of generated projects.
	License string `mapstructure:"license"`
	// Version is the initial manifest version.
	Version string `mapstructure:"version"`

	Defaults Defaults `mapstructure:"defaults"`

	// TemplatesDir replaces the embedded templates when set. It must hold
	// one subdirectory per database choice.
	TemplatesDir string `mapstructure:"templates_dir"`
	// Catalog replaces the embedded catalog when set.
	Catalog string `mapstructure:"catalog"`

	// PrefixOutput prefixes relayed package manager output with a gutter.
	PrefixOutput bool `mapstructure:"prefix_output"`
}

// Defaults preselects prompt answers.
type Defaults struct {
	Database       string `mapstructure:"database"`
	PackageManager string `mapstructure:"package_manager"`
}
