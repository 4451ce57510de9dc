package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nazmul-nhb/nhb-express/internal/catalog"
	"github.com/nazmul-nhb/nhb-express/internal/defs"
	"github.com/nazmul-nhb/nhb-express/pkg/models"
)

// Metadata is the attribution written into every manifest.
type Metadata struct {
	Author  models.Author
	License string
	Version string // initial package version
}

// Manifest is the generated package.json. Field order is the output order.
type Manifest struct {
	Name        string          `json:"name"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
	Scripts     catalog.Scripts `json:"scripts"`
	Author      models.Author   `json:"author"`
	License     string          `json:"license"`
	Keywords    []string        `json:"keywords"`
}

// BuildManifest assembles the manifest for req. scripts is the already
// merged common and database-specific mapping.
func BuildManifest(req Request, db catalog.Database, scripts catalog.Scripts, meta Metadata) Manifest {
	return Manifest{
		Name:        req.ProjectName,
		Version:     meta.Version,
		Description: Describe(db),
		Scripts:     scripts,
		Author:      meta.Author,
		License:     meta.License,
		Keywords:    []string{req.ProjectName, "server", "express", "typescript", db.ID},
	}
}

// Describe returns e.g. "Express TypeScript Mongoose (MongoDB) Server".
func Describe(db catalog.Database) string {
	name := cases.Title(language.English).String(db.ID)
	return fmt.Sprintf("Express TypeScript %s (%s) Server", name, db.Engine)
}

// Encode renders m as 2-space indented JSON followed by a newline.
func (m Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteManifest writes m to dir/package.json, replacing any copy the
// template shipped, and returns the file path.
func WriteManifest(dir string, m Manifest) (string, error) {
	data, err := m.Encode()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, defs.PackageJSON)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", defs.PackageJSON, err)
	}
	return path, nil
}
