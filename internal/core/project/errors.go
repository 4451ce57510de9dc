// Package project generates a new Express + TypeScript server project: it
// prepares the target directory, copies the template for the chosen
// database layer, writes package.json, and hands off to the dependency
// installer and migrator.
package project

import "errors"

// Sentinel errors for the project package.
var (
	// ErrInvalidRequest indicates a generation request failed validation.
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrTargetExists indicates the target directory exists and nobody
	// could be asked whether to replace it.
	ErrTargetExists = errors.New("target directory already exists")

	// ErrOverwriteDeclined indicates the user chose to keep an existing
	// target directory.
	ErrOverwriteDeclined = errors.New("overwrite declined")
)
