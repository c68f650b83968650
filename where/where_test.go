package where

import (
	"os"
	"strings"
	"testing"

	"github.com/malgo-cli/malgo/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPaths(t *testing.T) {
	filesystem.SetMemMapFs()
	defer filesystem.SetOsFs()

	Convey("Path resolution", t, func() {
		Convey("Config should honor the override variable", func() {
			So(os.Setenv(EnvConfigPath, "/custom/malgo"), ShouldBeNil)
			defer os.Unsetenv(EnvConfigPath)
			So(Config(), ShouldEqual, "/custom/malgo")
		})

		Convey("Logs should live under the config directory", func() {
			So(Logs(), ShouldStartWith, Config())
		})

		Convey("Registries should live under the cache directory", func() {
			So(Relations(), ShouldStartWith, Cache())
			So(Entries(), ShouldStartWith, Cache())
			So(Queries(), ShouldStartWith, Cache())
			So(strings.HasSuffix(Queries(), "queries.json"), ShouldBeTrue)
		})
	})
}
