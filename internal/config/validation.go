package config

import (
	"net/mail"
	"net/url"
	"regexp"
)

// semverPattern accepts MAJOR.MINOR.PATCH with an optional pre-release.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

const msgRequired = "is required"

// Validate checks cfg and reports every problem at once as *ValidationErrors.
func Validate(cfg *Config) error {
	errs := &ValidationErrors{}

	validateAuthor(cfg, errs)

	if cfg.License == "" {
		errs.add("license", msgRequired, nil)
	}
	if !semverPattern.MatchString(cfg.Version) {
		errs.add("version", "must be a semantic version such as 0.1.0", cfg.Version)
	}
	if cfg.Defaults.Database == "" {
		errs.add("defaults.database", msgRequired, nil)
	}
	if cfg.Defaults.PackageManager == "" {
		errs.add("defaults.package_manager", msgRequired, nil)
	}

	if len(errs.Errors) > 0 {
		return errs
	}
	return nil
}

// validateAuthor checks the author block written into manifests. Email and
// URL are optional but must be well formed when present.
func validateAuthor(cfg *Config, errs *ValidationErrors) {
	a := cfg.Author
	if a.Name == "" {
		errs.add("author.name", msgRequired, nil)
	}
	if a.Email != "" {
		if _, err := mail.ParseAddress(a.Email); err != nil {
			errs.add("author.email", "must be an email address", a.Email)
		}
	}
	if a.URL != "" {
		u, err := url.Parse(a.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs.add("author.url", "must be an absolute http(s) URL", a.URL)
		}
	}
}
