package config

import "github.com/nazmul-nhb/nhb-express/pkg/models"

// Default value constants.
const (
	DefaultAuthorName  = "Nazmul Hassan"
	DefaultAuthorEmail = "nazmulnhb@gmail.com"
	DefaultAuthorURL   = "https://nazmul-nhb.dev"

	DefaultLicense = "ISC"
	DefaultVersion = "0.1.0"

	DefaultDatabase       = "mongoose"
	DefaultPackageManager = "pnpm"
)

// NewDefaultConfig returns a Config populated with compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Author: models.Author{
			Name:  DefaultAuthorName,
			Email: DefaultAuthorEmail,
			URL:   DefaultAuthorURL,
		},
		License: DefaultLicense,
		Version: DefaultVersion,
		Defaults: Defaults{
			Database:       DefaultDatabase,
			PackageManager: DefaultPackageManager,
		},
	}
}
