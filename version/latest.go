package version

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"github.com/metafates/gache"

	"github.com/malgo-cli/malgo/filesystem"
	"github.com/malgo-cli/malgo/transport"
	"github.com/malgo-cli/malgo/where"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the newest released version, consulting the GitHub releases
// API and caching the answer to stay under its rate limits.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	body, err := transport.NewPool().Handle().Do(transport.Request{
		Method: "GET",
		URL:    "https://api.github.com/repos/malgo-cli/malgo/releases/latest",
	})
	if err != nil {
		return
	}

	var release struct {
		TagName string `json:"tag_name"`
	}

	err = json.Unmarshal(body, &release)
	if err != nil {
		return
	}

	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	version = release.TagName[1:]
	_ = versionCacher.Set(version)
	return
}
