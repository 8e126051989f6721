//go:build linux

package fsutil

import (
	"os"
	"syscall"
	"time"
)

// Times extracts access and modification times from a stat result. The
// access time comes from the raw stat structure where the platform
// exposes it.
func Times(info os.FileInfo) (atime, mtime time.Time) {
	mtime = info.ModTime()
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return mtime, mtime
	}
	return time.Unix(st.Atim.Sec, st.Atim.Nsec), mtime
}
