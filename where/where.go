// Package where implements a cross-platform resolver for application-specific
// filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/malgo-cli/malgo/constant"
	"github.com/malgo-cli/malgo/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the
// default configuration directory.
const EnvConfigPath = "MALGO_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path,
// creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration
// directory. The resolution can be overridden via the MALGO_CONFIG_PATH
// environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Malgo))
}

// Cache resolves the absolute path to the application's persistent cache
// directory, adhering to the XDG_CACHE_HOME specification or the
// platform-specific equivalent.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		// Fallback: a localized cache directory when the system path is
		// inaccessible.
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Malgo))
}

// Logs resolves the absolute path to the directory used for application
// diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Relations resolves the absolute path to the localized title-to-id relation
// registry backing closest-match lookups.
func Relations() string {
	return filepath.Join(Cache(), "relations.json")
}

// Entries resolves the absolute path to the localized catalog entry registry
// keyed by remote id.
func Entries() string {
	return filepath.Join(Cache(), "entries.json")
}

// Queries resolves the absolute path to the localized search query suggestion
// registry.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
