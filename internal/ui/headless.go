package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether animated widgets and prompts can be
// used. The session is headless unless every watched file is a terminal.
type HeadlessManager struct {
	forced *bool
	files  []*os.File
}

// NewHeadlessManager watches the given files, or os.Stdin and os.Stdout
// when none are given.
func NewHeadlessManager(files ...*os.File) *HeadlessManager {
	if len(files) == 0 {
		files = []*os.File{os.Stdin, os.Stdout}
	}
	return &HeadlessManager{files: files}
}

// IsHeadless reports whether the UI must fall back to plain text.
// ForceHeadless overrides detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	for _, f := range h.files {
		if f == nil || !isTerminal(f.Fd()) {
			return true
		}
	}
	return false
}

// ForceHeadless overrides detection. Pass true to force plain text output,
// or false to force interactive widgets.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
