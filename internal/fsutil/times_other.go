//go:build !linux

package fsutil

import (
	"os"
	"time"
)

// Times falls back to the modification time for both values on
// platforms that do not expose access time through syscall.Stat_t.
func Times(info os.FileInfo) (atime, mtime time.Time) {
	return info.ModTime(), info.ModTime()
}
