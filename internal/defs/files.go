package defs

// Common file names used across the project.
const (
	// PackageJSON is the generated project manifest.
	PackageJSON = "package.json"

	// ConfigYAML is the user configuration file under the config directory.
	ConfigYAML = "config.yaml"

	// ConfigDirName is the directory name under the user config root.
	ConfigDirName = "nhb-express"
)

// DotFiles lists template files shipped without their leading dot.
// Package pipelines drop dotfiles, so templates store "env" and rename it
// to ".env" after copying.
var DotFiles = []string{
	"env",
	"gitignore",
}
