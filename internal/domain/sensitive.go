package domain

import (
	"os"
	"strings"
)

// Permission modes used when writing env files. Sensitive files default
// to owner read/write only.
const (
	DefaultFileMode   os.FileMode = 0o644
	SensitiveFileMode os.FileMode = 0o600
)

var safeSuffixes = []string{".example", ".sample", ".template"}

// IsSensitiveName reports whether a logical file name follows the
// secret-like env naming convention. Template files such as
// .env.example carry no secrets and are excluded.
func IsSensitiveName(name string) bool {
	if !strings.HasPrefix(name, ".env") {
		return false
	}
	for _, suffix := range safeSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

// ModeForNewFile picks the creation mode for a file that does not exist
// yet: restrictive for sensitive names, the platform default otherwise.
func ModeForNewFile(name string) os.FileMode {
	if IsSensitiveName(name) {
		return SensitiveFileMode
	}
	return DefaultFileMode
}
