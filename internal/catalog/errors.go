// Package catalog holds the declarative tables that drive project
// generation: which database choices and package managers exist, which
// dependencies and scripts each one contributes, and which schema commands
// run after installation. The tables are read-only for the life of the
// process and are passed explicitly to the components that need them.
package catalog

import "errors"

// Sentinel errors for the catalog package.
var (
	// ErrUnknownDatabase indicates a database ID that is not in the catalog.
	ErrUnknownDatabase = errors.New("catalog: unknown database choice")

	// ErrUnknownPackageManager indicates a package manager ID that is not in the catalog.
	ErrUnknownPackageManager = errors.New("catalog: unknown package manager")

	// ErrUnavailable indicates a database choice that is listed but marked coming soon.
	ErrUnavailable = errors.New("catalog: database choice is not available yet")

	// ErrInvalidCatalog indicates a catalog document that fails validation.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)
