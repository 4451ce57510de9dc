package template

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// templatesRoot is the directory inside the embedded FS that holds one
// subdirectory per database choice.
const templatesRoot = "templates"

//go:embed all:templates
var embedded embed.FS

// Source resolves the template tree for a database choice. When dir is
// empty the tree compiled into the binary is used; otherwise the tree is
// read from dir/<choice> on disk.
func Source(dir, choice string) (fs.FS, error) {
	if choice == "" || choice != filepath.Base(choice) || choice == "." || choice == ".." {
		return nil, fmt.Errorf("%w: invalid choice %q", ErrTemplateNotFound, choice)
	}

	if dir != "" {
		root := filepath.Join(dir, choice)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, choice, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateNotFound, root)
		}
		return os.DirFS(root), nil
	}

	sub := path.Join(templatesRoot, choice)
	info, err := fs.Stat(embedded, sub)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, choice)
	}
	return fs.Sub(embedded, sub)
}

// Files returns the slash-separated relative paths of every file in fsys,
// in lexical order.
func Files(fsys fs.FS) ([]string, error) {
	var list []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			list = append(list, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
