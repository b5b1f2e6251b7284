// Package pkg holds the identity of the jsone module and the per-user
// directories it reads configuration from and writes state to.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the module embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It appears in help text and names the
	// per-user configuration and cache directories.
	Name = "jsone"
	// Description is a one-line summary used in help output.
	Description = "Evaluate expressions with the json-e builtin functions"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
