// Package gitignore maintains the project's .gitignore so the backup
// directory never ends up committed. It only ever appends; existing
// content and ordering are preserved.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const marker = "# dotkeep backups"

// EnsureEntry appends pattern to workDir/.gitignore under the dotkeep
// marker comment, creating the file if needed. A pattern that is
// already present (in any position) is never duplicated.
func EnsureEntry(workDir, pattern string) error {
	path := filepath.Join(workDir, ".gitignore")

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read .gitignore: %w", err)
	}

	if hasPattern(content, pattern) {
		return nil
	}

	var b strings.Builder
	b.Write(content)
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		b.WriteByte('\n')
	}
	if len(content) > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(marker)
	b.WriteByte('\n')
	b.WriteString(pattern)
	b.WriteByte('\n')

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("update .gitignore: %w", err)
	}
	return nil
}

func hasPattern(content []byte, pattern string) bool {
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == pattern {
			return true
		}
	}
	return false
}
