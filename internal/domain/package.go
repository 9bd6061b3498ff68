package domain

// Package is the subset of package.json consumed when tagging.

type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Private bool   `json:"private"`
	Path    string `json:"-"` // Path is not part of package.json
}
