package locfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WithTranslations builds the translated counterpart of f: same keys in the
// same order, same revision counters, values taken from translations. Every
// key of f must be covered or an error is returned; entries of f are never
// mutated.
func (f *File) WithTranslations(language string, translations map[string]string) (*File, error) {
	out := &File{
		Name:     OutputName(f.Name, language),
		Language: language,
		Entries:  make([]Entry, len(f.Entries)),
	}
	for i, e := range f.Entries {
		value, ok := translations[e.Key]
		if !ok {
			return nil, fmt.Errorf("no translation for key %q", e.Key)
		}
		out.Entries[i] = Entry{Key: e.Key, Value: value, Revision: e.Revision}
	}
	return out, nil
}

// Render serializes f into the game's localization file format. The output
// starts with a UTF-8 BOM; the game does not load localization files
// without one.
func Render(f *File) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	fmt.Fprintf(&buf, "l_%s:\n", f.Language)
	for _, e := range f.Entries {
		buf.WriteByte('\t')
		buf.WriteString(e.Key)
		buf.WriteByte(':')
		buf.WriteString(e.Revision)
		// Values are written verbatim; the format has no escape syntax.
		buf.WriteString(" \"")
		buf.WriteString(e.Value)
		buf.WriteString("\"\n")
	}
	return buf.Bytes()
}

// OutputName maps a source file name to its name in the target language,
// e.g. "units_l_english.yml" -> "units_l_simp_chinese.yml". Names without
// the source suffix get the language suffix appended before the extension.
func OutputName(srcName, language string) string {
	for _, ext := range []string{".yml", ".yaml"} {
		src := "_l_english" + ext
		if strings.HasSuffix(srcName, src) {
			return strings.TrimSuffix(srcName, src) + "_l_" + language + ext
		}
	}
	ext := filepath.Ext(srcName)
	return strings.TrimSuffix(srcName, ext) + "_l_" + language + ext
}

// OutputPath returns the destination path for a translated file, following
// the game's mod layout: <dst>/localization/<language>/<name>.
func OutputPath(dst, srcName, language string) string {
	return filepath.Join(dst, "localization", language, OutputName(srcName, language))
}

// WriteFile renders f and writes it to path, creating parent directories.
func WriteFile(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, Render(f), 0644); err != nil {
		return fmt.Errorf("write localization file: %w", err)
	}
	return nil
}
