package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/dexkeeper/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Storage, convey.ShouldEqual, "memory")
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 200)
				convey.So(cfg.RateLimitRPM, convey.ShouldEqual, 600)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("DEXKEEPER_ADDR", ":8080")
			t.Setenv("DEXKEEPER_STORAGE", "badger")
			t.Setenv("DEXKEEPER_DATA_PATH", "/tmp/dex")
			t.Setenv("DEXKEEPER_MAX_PAGE_SIZE", "50")
			t.Setenv("DEXKEEPER_LOG_FORMAT", "JSON")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Storage, convey.ShouldEqual, "badger")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/tmp/dex")
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 50)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
storage: badger
data_path: /var/lib/dexkeeper
cors_origins:
  - https://dex.example
  - https://app.example
rate_limit_rpm: 0
`)
			t.Setenv("DEXKEEPER_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Storage, convey.ShouldEqual, "badger")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/var/lib/dexkeeper")
				convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://dex.example", "https://app.example"})
				convey.So(cfg.RateLimitRPM, convey.ShouldEqual, 0)
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 200) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeConfigFile(t, "addr: \":9090\"\nmax_page_size: 25\n")
			t.Setenv("DEXKEEPER_CONFIG", path)
			t.Setenv("DEXKEEPER_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 25)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			t.Setenv("DEXKEEPER_CONFIG", writeConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			t.Setenv("DEXKEEPER_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			t.Setenv("DEXKEEPER_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			t.Setenv("DEXKEEPER_MAX_PAGE_SIZE", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dexkeeper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"DEXKEEPER_CONFIG", "DEXKEEPER_ADDR", "DEXKEEPER_STORAGE", "DEXKEEPER_DATA_PATH",
		"DEXKEEPER_MAX_PAGE_SIZE", "DEXKEEPER_LOG_FORMAT", "DEXKEEPER_LOG_LEVEL",
		"DEXKEEPER_CORS_ORIGINS", "DEXKEEPER_RATE_LIMIT_RPM", "DEXKEEPER_REFDATA_DIR",
	} {
		_ = os.Unsetenv(key)
	}
}
