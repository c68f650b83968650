// Package config provides centralized management for application settings,
// defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/malgo-cli/malgo/constant"
	"github.com/malgo-cli/malgo/key"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a multi-line string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	b.WriteString(f.Key)
	b.WriteString(" = ")
	b.WriteString(fmt.Sprint(viper.Get(f.Key)))
	b.WriteString("\n")
	for _, line := range strings.Split(f.Description, "\n") {
		b.WriteString("  # ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Malgo + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
	})
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global
	// registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.MALUsername, "", "MyAnimeList account name used for list fetches")
	register(key.MALListURL, "https://myanimelist.net/malappinfo.php?u=", "List fetch endpoint.\nThe username is appended, followed by status and type parameters")
	register(key.MALAnimeSearch, "https://myanimelist.net/api/anime/search.xml?q=", "Anime search endpoint")
	register(key.MALAnimeUpdate, "https://myanimelist.net/api/animelist/update/", "Anime list update endpoint.\nThe entry id and .xml suffix are appended")
	register(key.MALAnimeAdd, "https://myanimelist.net/api/animelist/add/", "Anime list add endpoint.\nThe entry id and .xml suffix are appended")
	register(key.MALMangaSearch, "https://myanimelist.net/api/manga/search.xml?q=", "Manga search endpoint")
	register(key.MALMangaUpdate, "https://myanimelist.net/api/mangalist/update/", "Manga list update endpoint.\nThe entry id and .xml suffix are appended")
	register(key.MALMangaAdd, "https://myanimelist.net/api/mangalist/add/", "Manga list add endpoint.\nThe entry id and .xml suffix are appended")
	register(key.NetworkTimeout, time.Minute, "Timeout for a single catalog request")
	register(key.CacheImageLifetime, 24*time.Hour, "Lifetime of cached cover images")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Periodically check for newer releases")
}
