package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteAtomic(t *testing.T) {
	Convey("Given a sandbox directory", t, func() {
		tempDir, err := os.MkdirTemp("", "fsutil_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		target := filepath.Join(tempDir, ".env")

		Convey("When writing text content to a new file", func() {
			err := WriteAtomic(target, []byte("A=1\nB=2\n"), 0o644)

			Convey("It should round-trip byte-identically", func() {
				So(err, ShouldBeNil)
				content, err := os.ReadFile(target)
				So(err, ShouldBeNil)
				So(string(content), ShouldEqual, "A=1\nB=2\n")
			})

			Convey("It should leave no temp files behind", func() {
				entries, err := os.ReadDir(tempDir)
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
			})
		})

		Convey("When writing binary content", func() {
			payload := []byte{0x00, 0xff, 0x10, 0x00, 0x7f}
			err := WriteAtomic(target, payload, 0o644)

			Convey("It should round-trip byte-identically", func() {
				So(err, ShouldBeNil)
				content, err := os.ReadFile(target)
				So(err, ShouldBeNil)
				So(content, ShouldResemble, payload)
			})
		})

		Convey("When replacing an existing 0600 file with its captured mode", func() {
			So(os.WriteFile(target, []byte("old"), 0o600), ShouldBeNil)

			mode, exists, err := StatMode(target)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
			So(mode, ShouldEqual, os.FileMode(0o600))

			err = WriteAtomic(target, []byte("new"), mode)

			Convey("It should keep the restrictive mode", func() {
				So(err, ShouldBeNil)
				info, err := os.Stat(target)
				So(err, ShouldBeNil)
				So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))

				content, _ := os.ReadFile(target)
				So(string(content), ShouldEqual, "new")
			})
		})

		Convey("When the explicit mode differs from the umask default", func() {
			err := WriteAtomic(target, []byte("secret"), 0o600)

			Convey("It should be applied regardless of umask", func() {
				So(err, ShouldBeNil)
				info, err := os.Stat(target)
				So(err, ShouldBeNil)
				So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
			})
		})

		Convey("When the target directory does not exist", func() {
			missing := filepath.Join(tempDir, "no", "such", "dir", ".env")
			err := WriteAtomic(missing, []byte("x"), 0o644)

			Convey("It should fail with a temp-file creation error", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "create temp file")
			})
		})

		Convey("When overwriting a file repeatedly", func() {
			for _, content := range []string{"one", "two", "three"} {
				So(WriteAtomic(target, []byte(content), 0o644), ShouldBeNil)
			}

			Convey("The last write should win and nothing should be left over", func() {
				content, err := os.ReadFile(target)
				So(err, ShouldBeNil)
				So(string(content), ShouldEqual, "three")

				entries, err := os.ReadDir(tempDir)
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
			})
		})
	})
}

func TestStatMode(t *testing.T) {
	Convey("Given StatMode", t, func() {
		tempDir, err := os.MkdirTemp("", "fsutil_test")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		Convey("When the path does not exist", func() {
			_, exists, err := StatMode(filepath.Join(tempDir, "missing"))
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("When the path is a directory", func() {
			_, _, err := StatMode(tempDir)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "not a regular file")
		})
	})
}
