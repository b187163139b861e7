package locfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	f := &File{
		Name:     "test_l_simp_chinese.yml",
		Language: "simp_chinese",
		Entries: []Entry{
			{Key: "a", Value: "你好 $x$", Revision: "0"},
			{Key: "b", Value: "世界", Revision: ""},
		},
	}

	got := Render(f)
	want := "\xEF\xBB\xBF" +
		"l_simp_chinese:\n" +
		"\ta:0 \"你好 $x$\"\n" +
		"\tb: \"世界\"\n"
	assert.Equal(t, want, string(got))
}

// Parsing then rendering with the same language tag must reproduce the key
// order, key set, and revision counters exactly.
func TestRender_IdentityRoundTrip(t *testing.T) {
	src := []byte("l_english:\n" +
		"\tfirst:0 \"One\"\n" +
		"\tsecond: \"Two $count$\"\n" +
		"\tthird:7 \"Three [GetName]\"\n")

	f, err := Parse(src, "roundtrip_l_english.yml")
	require.NoError(t, err)

	reparsed, err := Parse(Render(f), f.Name)
	require.NoError(t, err)

	assert.Equal(t, f.Language, reparsed.Language)
	assert.Equal(t, f.Entries, reparsed.Entries)
}

func TestWithTranslations(t *testing.T) {
	f := &File{
		Name:     "x_l_english.yml",
		Language: "english",
		Entries: []Entry{
			{Key: "a", Value: "Hello", Revision: "1"},
			{Key: "b", Value: "World", Revision: ""},
		},
	}

	out, err := f.WithTranslations("german", map[string]string{"a": "Hallo", "b": "Welt"})
	require.NoError(t, err)

	assert.Equal(t, "x_l_german.yml", out.Name)
	assert.Equal(t, "german", out.Language)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, Entry{Key: "a", Value: "Hallo", Revision: "1"}, out.Entries[0])
	assert.Equal(t, Entry{Key: "b", Value: "Welt", Revision: ""}, out.Entries[1])

	// The source file is untouched.
	assert.Equal(t, "Hello", f.Entries[0].Value)
}

func TestWithTranslations_MissingKey(t *testing.T) {
	f := &File{
		Name:     "x_l_english.yml",
		Language: "english",
		Entries:  []Entry{{Key: "a"}, {Key: "b"}},
	}

	_, err := f.WithTranslations("german", map[string]string{"a": "Hallo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "units_l_japanese.yml", OutputName("units_l_english.yml", "japanese"))
	assert.Equal(t, "events_l_korean.yaml", OutputName("events_l_english.yaml", "korean"))
	assert.Equal(t, "extra_l_french.yml", OutputName("extra.yml", "french"))
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/mods/out", "units_l_english.yml", "russian")
	assert.Equal(t, filepath.Join("/mods/out", "localization", "russian", "units_l_russian.yml"), got)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	f := &File{
		Name:     "w_l_polish.yml",
		Language: "polish",
		Entries:  []Entry{{Key: "k", Value: "v", Revision: "0"}},
	}

	path := OutputPath(dir, "w_l_english.yml", "polish")
	require.NoError(t, WriteFile(path, f))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(f), data)
}
