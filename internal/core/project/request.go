package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
)

// Request is one validated set of answers: what to generate and with which
// tools. It is built once and never modified.
type Request struct {
	ProjectName    string
	Database       string // catalog database ID
	PackageManager string // catalog package manager ID
}

// NewRequest builds a Request, trimming the project name.
func NewRequest(name, database, packageManager string) Request {
	return Request{
		ProjectName:    strings.TrimSpace(name),
		Database:       database,
		PackageManager: packageManager,
	}
}

// Validate checks r against cat and returns the selected entries.
func (r Request) Validate(cat *catalog.Catalog) (catalog.Database, catalog.PackageManager, error) {
	if err := ValidateName(r.ProjectName); err != nil {
		return catalog.Database{}, catalog.PackageManager{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	db, err := cat.Database(r.Database)
	if err != nil {
		return catalog.Database{}, catalog.PackageManager{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	pm, err := cat.PackageManager(r.PackageManager)
	if err != nil {
		return catalog.Database{}, catalog.PackageManager{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return db, pm, nil
}

// ValidateName accepts a single path element. "." and ".." would make the
// overwrite step remove the working directory or its parent. The messages
// are shown to the user as-is by the name prompt.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New("project name is required")
	case name != strings.TrimSpace(name):
		return fmt.Errorf("project name %q has surrounding whitespace", name)
	case name == "." || name == "..":
		return fmt.Errorf("project name %q is not a directory name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("project name %q contains a path separator", name)
	}
	return nil
}
