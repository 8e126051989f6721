package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When creating a console-only logger", func() {
			log, err := New(Options{Level: "info"})

			Convey("It should log without panicking", func() {
				So(err, ShouldBeNil)
				So(log, ShouldNotBeNil)
				So(func() { log.Infof("hello %s", "world") }, ShouldNotPanic)
				log.Close()
			})
		})

		Convey("When a log file is configured", func() {
			tempDir, err := os.MkdirTemp("", "logger_test")
			So(err, ShouldBeNil)
			defer os.RemoveAll(tempDir)

			logFile := filepath.Join(tempDir, "logs", "dotkeep.log")
			log, err := New(Options{Level: "debug", File: logFile})

			Convey("It should create the file sink", func() {
				So(err, ShouldBeNil)
				log.Debugf("debug entry")
				log.Close()

				_, err := os.Stat(logFile)
				So(err, ShouldBeNil)
			})
		})

		Convey("When the level string is unknown", func() {
			log, err := New(Options{Level: "chatty"})

			Convey("It should fall back to info", func() {
				So(err, ShouldBeNil)
				So(func() { log.Infof("still works") }, ShouldNotPanic)
				log.Close()
			})
		})

		Convey("When the log directory cannot be created", func() {
			log, err := New(Options{File: "/proc/no/such/dir/dotkeep.log"})

			Convey("It should fail with a directory error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "create log directory")
				So(log, ShouldBeNil)
			})
		})
	})
}
