package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given a working directory", t, func() {
		workDir, err := os.MkdirTemp("", "config_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(workDir)

		Convey("When no config file exists", func() {
			cfg, err := Load(workDir)

			Convey("Defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Files.Source, ShouldEqual, ".env.example")
				So(cfg.Files.Targets, ShouldContain, ".env")
				So(cfg.Backup.DirName, ShouldEqual, ".dotkeep-backups")
				So(cfg.Backup.KeepCount, ShouldEqual, 10)
				So(cfg.Watch.Debounce, ShouldEqual, 2*time.Second)
			})
		})

		Convey("When a config file overrides defaults", func() {
			content := "files:\n  source: .env\n  targets:\n    - .env.staging\nbackup:\n  keep_count: 3\n"
			So(os.WriteFile(filepath.Join(workDir, ".dotkeep.yaml"), []byte(content), 0o644), ShouldBeNil)

			cfg, err := Load(workDir)

			Convey("File values should win", func() {
				So(err, ShouldBeNil)
				So(cfg.Files.Source, ShouldEqual, ".env")
				So(cfg.Files.Targets, ShouldResemble, []string{".env.staging"})
				So(cfg.Backup.KeepCount, ShouldEqual, 3)
				So(cfg.App.LogLevel, ShouldEqual, "info")
			})
		})

		Convey("When the config file is invalid yaml", func() {
			So(os.WriteFile(filepath.Join(workDir, ".dotkeep.yaml"), []byte(":\t:"), 0o644), ShouldBeNil)

			_, err := Load(workDir)
			So(err, ShouldNotBeNil)
		})

		Convey("When a value fails validation", func() {
			content := "backup:\n  keep_count: -1\n"
			So(os.WriteFile(filepath.Join(workDir, ".dotkeep.yaml"), []byte(content), 0o644), ShouldBeNil)

			_, err := Load(workDir)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "keep_count")
		})
	})
}

func TestFamily(t *testing.T) {
	Convey("Given a configuration", t, func() {
		cfg := &Config{
			Files: FilesConfig{
				Source:  ".env.example",
				Targets: []string{".env", ".env.example", ".env.local"},
			},
		}

		Convey("Family should include the source once", func() {
			So(cfg.Family(), ShouldResemble, []string{".env.example", ".env", ".env.local"})
		})
	})
}
