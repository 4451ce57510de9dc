// Package template ships the project templates and copies a selected
// template tree into a new project directory.
package template

import "errors"

// Sentinel errors for the template package.
var (
	// ErrTemplateNotFound indicates no template tree exists for a database choice.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrPathTraversal indicates a template path that would escape the destination.
	ErrPathTraversal = errors.New("template path escapes destination")
)
