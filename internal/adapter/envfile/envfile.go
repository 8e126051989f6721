// Package envfile parses the line-oriented .env format: KEY=VALUE
// pairs, optional "export " prefixes, #-comments and blank lines.
// Parsing keeps enough structure to rewrite a file without disturbing
// lines it does not touch.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Line is one parsed line of an env file. Raw always holds the
// original text so a file can be reproduced unchanged.
type Line struct {
	Raw     string
	Key     string
	Value   string
	IsPair  bool
	Comment bool
	Blank   bool
}

// File is a parsed env file.
type File struct {
	Path  string
	Lines []Line
}

// Parse decodes env file content.
func Parse(content []byte) *File {
	f := &File{}
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	for _, raw := range strings.Split(text, "\n") {
		f.Lines = append(f.Lines, parseLine(raw))
	}
	// A trailing newline yields one empty trailing element; drop it so
	// round-tripping does not grow the file.
	if n := len(f.Lines); n > 0 && f.Lines[n-1].Blank && f.Lines[n-1].Raw == "" {
		f.Lines = f.Lines[:n-1]
	}
	return f
}

// Load reads and parses an env file from disk.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	f := Parse(content)
	f.Path = path
	return f, nil
}

func parseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Raw: raw, Blank: true}
	case strings.HasPrefix(trimmed, "#"):
		return Line{Raw: raw, Comment: true}
	}

	body := strings.TrimPrefix(trimmed, "export ")
	eq := strings.Index(body, "=")
	if eq <= 0 {
		// Not a pair; keep the raw line as-is.
		return Line{Raw: raw}
	}

	key := strings.TrimSpace(body[:eq])
	value := strings.TrimSpace(body[eq+1:])
	value = unquote(value)
	return Line{Raw: raw, Key: key, Value: value, IsPair: true}
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// Keys returns the file's keys in declaration order, first occurrence
// winning on duplicates.
func (f *File) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, line := range f.Lines {
		if line.IsPair && !seen[line.Key] {
			seen[line.Key] = true
			keys = append(keys, line.Key)
		}
	}
	return keys
}

// Has reports whether the file declares a key.
func (f *File) Has(key string) bool {
	for _, line := range f.Lines {
		if line.IsPair && line.Key == key {
			return true
		}
	}
	return false
}

// Get returns a key's value (first occurrence) and whether it exists.
func (f *File) Get(key string) (string, bool) {
	for _, line := range f.Lines {
		if line.IsPair && line.Key == key {
			return line.Value, true
		}
	}
	return "", false
}

// Render reproduces the file's text, with a trailing newline when the
// file is non-empty.
func (f *File) Render() []byte {
	if len(f.Lines) == 0 {
		return nil
	}
	var b strings.Builder
	for _, line := range f.Lines {
		b.WriteString(line.Raw)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Append adds a KEY=VALUE pair at the end of the file.
func (f *File) Append(key, value string) {
	f.Lines = append(f.Lines, Line{
		Raw:    fmt.Sprintf("%s=%s", key, value),
		Key:    key,
		Value:  value,
		IsPair: true,
	})
}

// AppendComment adds a #-comment line at the end of the file.
func (f *File) AppendComment(text string) {
	f.Lines = append(f.Lines, Line{Raw: "# " + text, Comment: true})
}

// AppendBlank adds an empty separator line.
func (f *File) AppendBlank() {
	f.Lines = append(f.Lines, Line{Blank: true})
}
