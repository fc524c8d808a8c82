// Package pathutils resolves user-supplied directory paths such as "~/notes/.pending".
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	tildeSymbolConstant = "~"
)

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// EnvironmentLookup resolves an environment variable.
type EnvironmentLookup func(string) (string, bool)

// HomeExpander rewrites a leading "~" to the home directory and expands $VARIABLE references.
type HomeExpander struct {
	homeDirectoryProvider HomeDirectoryProvider
	environmentLookup     EnvironmentLookup
	homeDirectory         string
	homeDirectoryError    error
	initializationGuard   sync.Once
}

// NewHomeExpander constructs a HomeExpander backed by the operating system.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir, os.LookupEnv)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with custom lookups; nil falls back to the operating system.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider, lookup EnvironmentLookup) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &HomeExpander{homeDirectoryProvider: provider, environmentLookup: lookup}
}

// Expand returns candidatePath with environment references and a leading tilde resolved.
// Unknown variables are kept verbatim and "~user" forms are not rewritten.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || len(candidatePath) == 0 {
		return candidatePath
	}

	expandedPath := os.Expand(candidatePath, func(variableName string) string {
		if value, found := expander.environmentLookup(variableName); found {
			return value
		}
		return "$" + variableName
	})

	if !strings.HasPrefix(expandedPath, tildeSymbolConstant) {
		return expandedPath
	}
	remainder := strings.TrimPrefix(expandedPath, tildeSymbolConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return expandedPath
	}

	homeDirectory := expander.resolveHomeDirectory()
	if len(homeDirectory) == 0 {
		return expandedPath
	}
	return filepath.Join(homeDirectory, remainder)
}

func (expander *HomeExpander) resolveHomeDirectory() string {
	expander.initializationGuard.Do(func() {
		expander.homeDirectory, expander.homeDirectoryError = expander.homeDirectoryProvider()
	})
	if expander.homeDirectoryError != nil {
		return ""
	}
	return expander.homeDirectory
}
