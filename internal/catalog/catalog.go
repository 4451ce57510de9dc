package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nazmul-nhb/nhb-express/pkg/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Profile is the set of dependencies and scripts one layer contributes.
type Profile struct {
	Dependencies    []string `yaml:"dependencies"`
	DevDependencies []string `yaml:"dev_dependencies"`
	Scripts         Scripts  `yaml:"scripts"`
}

// Command is an external command line: the executable followed by its arguments.
type Command []string

// Name returns the executable name.
func (c Command) Name() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Args returns the arguments after the executable.
func (c Command) Args() []string {
	if len(c) < 2 {
		return nil
	}
	return c[1:]
}

// String renders the command line separated by spaces.
func (c Command) String() string {
	return strings.Join(c, " ")
}

// Database is one selectable database + ODM/ORM choice.
type Database struct {
	ID         string        `yaml:"id"`
	Label      string        `yaml:"label"`
	Hint       string        `yaml:"hint"`
	Engine     models.Engine `yaml:"engine"`
	ComingSoon bool          `yaml:"coming_soon"`
	Profile    `yaml:",inline"`

	// Migrations run in order after dependency installation.
	Migrations []Command `yaml:"migrations"`
}

// Available reports whether the choice can be selected.
func (d Database) Available() bool {
	return !d.ComingSoon
}

// PackageManager describes how one package manager adds dependencies.
type PackageManager struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Add   []string `yaml:"add"`      // verb (and fixed flags) that adds packages
	Dev   string   `yaml:"dev_flag"` // flag that marks packages as dev dependencies
}

// AddCommand returns the command line that installs pkgs. When dev is true
// the dev flag is placed before the package list.
func (p PackageManager) AddCommand(dev bool, pkgs []string) Command {
	cmd := make(Command, 0, 2+len(p.Add)+len(pkgs))
	cmd = append(cmd, p.ID)
	cmd = append(cmd, p.Add...)
	if dev {
		cmd = append(cmd, p.Dev)
	}
	return append(cmd, pkgs...)
}

// Catalog is the full table of supported choices.
type Catalog struct {
	Common          Profile          `yaml:"common"`
	Databases       []Database       `yaml:"databases"`
	PackageManagers []PackageManager `yaml:"package_managers"`
}

// DependencySet is the pair of ordered package lists handed to the installer.
type DependencySet struct {
	Runtime []string
	Dev     []string
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and validates a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks the structural rules every catalog must satisfy.
func (c *Catalog) Validate() error {
	if len(c.Available()) == 0 {
		return fmt.Errorf("%w: no selectable database choice", ErrInvalidCatalog)
	}
	if len(c.PackageManagers) == 0 {
		return fmt.Errorf("%w: no package manager", ErrInvalidCatalog)
	}

	seen := make(map[string]bool)
	for _, db := range c.Databases {
		if db.ID == "" {
			return fmt.Errorf("%w: database without id", ErrInvalidCatalog)
		}
		if seen[db.ID] {
			return fmt.Errorf("%w: duplicate database %q", ErrInvalidCatalog, db.ID)
		}
		seen[db.ID] = true
		if db.Engine == "" {
			return fmt.Errorf("%w: database %q has no engine", ErrInvalidCatalog, db.ID)
		}
		for i, m := range db.Migrations {
			if m.Name() == "" {
				return fmt.Errorf("%w: database %q migration %d is empty", ErrInvalidCatalog, db.ID, i)
			}
		}
	}

	clear(seen)
	for _, pm := range c.PackageManagers {
		if pm.ID == "" {
			return fmt.Errorf("%w: package manager without id", ErrInvalidCatalog)
		}
		if seen[pm.ID] {
			return fmt.Errorf("%w: duplicate package manager %q", ErrInvalidCatalog, pm.ID)
		}
		seen[pm.ID] = true
		if len(pm.Add) == 0 || pm.Dev == "" {
			return fmt.Errorf("%w: package manager %q needs add and dev_flag", ErrInvalidCatalog, pm.ID)
		}
	}
	return nil
}

// Available returns the database choices that can be selected, in catalog order.
func (c *Catalog) Available() []Database {
	var out []Database
	for _, db := range c.Databases {
		if db.Available() {
			out = append(out, db)
		}
	}
	return out
}

// ComingSoon returns the database choices that are listed but not selectable.
func (c *Catalog) ComingSoon() []Database {
	var out []Database
	for _, db := range c.Databases {
		if !db.Available() {
			out = append(out, db)
		}
	}
	return out
}

// Database looks up a selectable database choice by ID.
func (c *Catalog) Database(id string) (Database, error) {
	i := slices.IndexFunc(c.Databases, func(db Database) bool { return db.ID == id })
	if i < 0 {
		return Database{}, fmt.Errorf("%w: %q", ErrUnknownDatabase, id)
	}
	if !c.Databases[i].Available() {
		return Database{}, fmt.Errorf("%w: %q", ErrUnavailable, id)
	}
	return c.Databases[i], nil
}

// PackageManager looks up a package manager by ID.
func (c *Catalog) PackageManager(id string) (PackageManager, error) {
	i := slices.IndexFunc(c.PackageManagers, func(pm PackageManager) bool { return pm.ID == id })
	if i < 0 {
		return PackageManager{}, fmt.Errorf("%w: %q", ErrUnknownPackageManager, id)
	}
	return c.PackageManagers[i], nil
}

// Dependencies returns common ++ database-specific lists for db.
// The returned slices are fresh and safe to modify.
func (c *Catalog) Dependencies(db Database) DependencySet {
	return DependencySet{
		Runtime: slices.Concat(c.Common.Dependencies, db.Dependencies),
		Dev:     slices.Concat(c.Common.DevDependencies, db.DevDependencies),
	}
}

// Scripts returns the common scripts merged with db's scripts.
func (c *Catalog) Scripts(db Database) Scripts {
	return c.Common.Scripts.Merge(db.Scripts)
}
