package locfile

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	headerPattern = regexp.MustCompile(`^l_([a-z_]+):\s*(?:#.*)?$`)
	entryPattern  = regexp.MustCompile(`^\s*([A-Za-z0-9_.\-]+):(\d*)\s*"(.*)"\s*(?:#.*)?$`)
)

// ParseError reports a malformed localization file.
type ParseError struct {
	Name string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

// Parse converts raw localization file content into a File. The input may
// start with a UTF-8 BOM. The first significant line must be the language
// header; every following non-blank, non-comment line must be an entry.
func Parse(data []byte, name string) (*File, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	file := &File{Name: name}
	sawHeader := false

	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !sawHeader {
			m := headerPattern.FindStringSubmatch(trimmed)
			if m == nil {
				return nil, &ParseError{Name: name, Line: i + 1,
					Msg: fmt.Sprintf("expected language header, got %q", trimmed)}
			}
			file.Language = m[1]
			sawHeader = true
			continue
		}

		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Name: name, Line: i + 1,
				Msg: fmt.Sprintf("malformed entry %q", trimmed)}
		}
		file.Entries = append(file.Entries, Entry{
			Key:      m[1],
			Value:    m[3],
			Revision: m[2],
		})
	}

	if !sawHeader {
		return nil, &ParseError{Name: name, Msg: "missing language header"}
	}
	return file, nil
}

// ReadFile reads and parses the localization file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read localization file: %w", err)
	}
	return Parse(data, filepath.Base(path))
}

// IsSource reports whether name follows the English source file naming
// convention.
func IsSource(name string) bool {
	return strings.HasSuffix(name, "_l_english.yml") ||
		strings.HasSuffix(name, "_l_english.yaml")
}

// FindSources walks root recursively and returns the paths of all English
// source files, sorted for a stable processing order.
func FindSources(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsSource(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
