package gitignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEnsureEntry(t *testing.T) {
	Convey("Given a working directory", t, func() {
		workDir, err := os.MkdirTemp("", "gitignore_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(workDir)

		path := filepath.Join(workDir, ".gitignore")

		Convey("When no .gitignore exists", func() {
			So(EnsureEntry(workDir, ".dotkeep-backups/"), ShouldBeNil)

			Convey("It should create one with the marker comment", func() {
				content, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(content), ShouldContainSubstring, "# dotkeep backups\n.dotkeep-backups/\n")
			})
		})

		Convey("When a .gitignore already has unrelated entries", func() {
			So(os.WriteFile(path, []byte("node_modules/\n*.log\n"), 0o644), ShouldBeNil)
			So(EnsureEntry(workDir, ".dotkeep-backups/"), ShouldBeNil)

			Convey("Existing content and ordering should be preserved", func() {
				content, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(strings.HasPrefix(string(content), "node_modules/\n*.log\n"), ShouldBeTrue)
				So(string(content), ShouldContainSubstring, ".dotkeep-backups/")
			})
		})

		Convey("When the file lacks a trailing newline", func() {
			So(os.WriteFile(path, []byte("dist"), 0o644), ShouldBeNil)
			So(EnsureEntry(workDir, ".dotkeep-backups/"), ShouldBeNil)

			content, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, "dist\n")
		})

		Convey("When the entry is already present", func() {
			So(EnsureEntry(workDir, ".dotkeep-backups/"), ShouldBeNil)
			before, _ := os.ReadFile(path)

			So(EnsureEntry(workDir, ".dotkeep-backups/"), ShouldBeNil)
			after, _ := os.ReadFile(path)

			Convey("It should be idempotent", func() {
				So(string(after), ShouldEqual, string(before))
				So(strings.Count(string(after), ".dotkeep-backups/"), ShouldEqual, 1)
			})
		})
	})
}
