// Package key defines the canonical set of configuration identifiers used for
// centralized settings management.
package key

// MyAnimeList Service - these keys identify the account and the service
// endpoints every catalog operation talks to.
const (
	MALUsername    = "mal.username"
	MALListURL     = "mal.list_url"
	MALAnimeSearch = "mal.anime_search_url"
	MALAnimeUpdate = "mal.anime_update_url"
	MALAnimeAdd    = "mal.anime_add_url"
	MALMangaSearch = "mal.manga_search_url"
	MALMangaUpdate = "mal.manga_update_url"
	MALMangaAdd    = "mal.manga_add_url"
)

// Network Transport - these keys tune the shared transport pool.
const (
	NetworkTimeout = "network.timeout"
)

// Caching - these keys govern localized result and image caching.
const (
	CacheImageLifetime = "cache.image_lifetime"
)

// Search Interaction - these keys define the behavior of search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Logging Infrastructure - these keys manage the application's internal
// diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern general CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
