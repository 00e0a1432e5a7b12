package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/dexkeeper/internal/config"
	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
	"github.com/okian/dexkeeper/pkg/logger"
)

func execute(stdin string, args ...string) (string, error) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		out, err := execute("", "version")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldContainSubstring, "dexkeeper version "+Version)
	})
}

func TestCalcCommand(t *testing.T) {
	convey.Convey("Given the calc command", t, func() {
		convey.Convey("When computing one stat from flat base stats", func() {
			out, err := execute("", "calc", "--base", "100", "--iv", "31", "--ev", "0", "--level", "100", "--stat", "hp")
			convey.So(err, convey.ShouldBeNil)
			convey.So(strings.TrimSpace(out), convey.ShouldEqual, "341")
		})

		convey.Convey("When a nature boosts the requested stat", func() {
			out, err := execute("", "calc", "--base", "100", "--nature", "timid", "--stat", "speed")
			convey.So(err, convey.ShouldBeNil)
			convey.So(strings.TrimSpace(out), convey.ShouldEqual, "259")
		})

		convey.Convey("When computing a full report for a named species", func() {
			out, err := execute("", "calc", "--species", "Pikachu", "--level", "50")
			convey.So(err, convey.ShouldBeNil)

			var report struct {
				SpeciesID int          `json:"pokemonId"`
				Name      string       `json:"name"`
				Stats     stat.StatSet `json:"stats"`
				Total     int          `json:"total"`
			}
			convey.So(json.Unmarshal([]byte(out), &report), convey.ShouldBeNil)
			convey.So(report.SpeciesID, convey.ShouldEqual, 25)
			convey.So(report.Name, convey.ShouldEqual, "Pikachu")
			convey.So(report.Total, convey.ShouldEqual, report.Stats.Total())
		})

		convey.Convey("When the input is incomplete or malformed", func() {
			_, err := execute("", "calc", "--level", "50")
			convey.So(err, convey.ShouldNotBeNil)

			_, err = execute("", "calc", "--base", "100", "--iv", "1,2")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "--iv")

			_, err = execute("", "calc", "--base", "100", "--stat", "luck")
			convey.So(err, convey.ShouldNotBeNil)

			_, err = execute("", "calc", "--species", "missingno")
			convey.So(err, convey.ShouldNotBeNil)

			_, err = execute("", "calc", "--base", "100", "--level", "0")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestParseStatList(t *testing.T) {
	convey.Convey("Given stat lists", t, func() {
		ss, err := parseStatList("108, 130,95,80,85,102")
		convey.So(err, convey.ShouldBeNil)
		convey.So(ss, convey.ShouldResemble, stat.StatSet{HP: 108, Attack: 130, Defense: 95, SpecialAttack: 80, SpecialDefense: 85, Speed: 102})

		ss, err = parseStatList("31")
		convey.So(err, convey.ShouldBeNil)
		convey.So(ss.Total(), convey.ShouldEqual, 6*31)

		_, err = parseStatList("1,2,3")
		convey.So(err, convey.ShouldEqual, errBadStatList)

		_, err = parseStatList("x")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestSeedAndStatsCommands(t *testing.T) {
	convey.Convey("Given the seed command", t, func() {
		convey.Convey("When writing to stdout", func() {
			out, err := execute("", "seed", "--count", "5", "--seed", "9")
			convey.So(err, convey.ShouldBeNil)
			var records []model.Pokemon
			convey.So(json.Unmarshal([]byte(out), &records), convey.ShouldBeNil)
			convey.So(len(records), convey.ShouldEqual, 5)

			convey.Convey("Then the same seed draws the same records", func() {
				again, err := execute("", "seed", "--count", "5", "--seed", "9")
				convey.So(err, convey.ShouldBeNil)
				var second []model.Pokemon
				convey.So(json.Unmarshal([]byte(again), &second), convey.ShouldBeNil)
				for i := range records {
					convey.So(second[i].ID, convey.ShouldEqual, records[i].ID)
					convey.So(second[i].SpeciesID, convey.ShouldEqual, records[i].SpeciesID)
				}
			})
		})

		convey.Convey("When writing to a file and reading it back with stats", func() {
			path := filepath.Join(t.TempDir(), "sample.json")
			_, err := execute("", "seed", "-n", "20", "--out", path)
			convey.So(err, convey.ShouldBeNil)
			_, err = os.Stat(path)
			convey.So(err, convey.ShouldBeNil)

			out, err := execute("", "stats", "--file", path)
			convey.So(err, convey.ShouldBeNil)
			var snap struct {
				TotalCaught   int `json:"totalCaught"`
				UniqueSpecies int `json:"uniqueSpecies"`
			}
			convey.So(json.Unmarshal([]byte(out), &snap), convey.ShouldBeNil)
			convey.So(snap.TotalCaught, convey.ShouldEqual, 20)
			convey.So(snap.UniqueSpecies, convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("When stats reads an empty collection from stdin", func() {
			out, err := execute("[]", "stats")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, `"totalCaught": 0`)
		})

		convey.Convey("When stats gets a missing file or bad JSON", func() {
			_, err := execute("", "stats", "--file", filepath.Join(t.TempDir(), "nope.json"))
			convey.So(err, convey.ShouldNotBeNil)

			_, err = execute("{", "stats")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the count is negative", func() {
			_, err := execute("", "seed", "--count", "-1")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestBuildApp(t *testing.T) {
	convey.Convey("Given a default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When building with the memory store", func() {
			svc, h, err := buildApp(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)
			defer svc.Stop()

			for _, path := range []string{"/healthz", "/api/v1/status", "/docs", "/docs/openapi.yaml", "/dashboard"} {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("When building with the badger store", func() {
			cfg.Storage = config.StorageBadger
			cfg.DataPath = t.TempDir()
			svc, h, err := buildApp(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldBeNil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/collection", strings.NewReader(`{"pokemonId":4,"level":10}`))
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
			svc.Stop()

			convey.Convey("Then records survive a restart", func() {
				svc2, _, err := buildApp(ctx, cfg, logger.Nop())
				convey.So(err, convey.ShouldBeNil)
				defer svc2.Stop()
				all, err := svc2.Export(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(all), convey.ShouldEqual, 1)
				convey.So(all[0].Name, convey.ShouldEqual, "Charmander")
			})
		})

		convey.Convey("When the reference data directory does not exist", func() {
			cfg.RefdataDir = filepath.Join(t.TempDir(), "missing")
			_, _, err := buildApp(ctx, cfg, logger.Nop())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestServeShutdown(t *testing.T) {
	convey.Convey("Given a server on an ephemeral port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(100*time.Millisecond, cancel)

		convey.Convey("When the context is cancelled", func() {
			convey.So(serve(ctx, cfg), convey.ShouldBeNil)
		})
	})
}
