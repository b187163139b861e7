package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdxmods/modloc/internal/batch"
	"github.com/pdxmods/modloc/internal/glossary"
	"github.com/pdxmods/modloc/internal/locfile"
)

func testBatch() batch.Batch {
	return batch.Batch{Entries: []locfile.Entry{
		{Key: "a", Value: "Hello $x$"},
		{Key: "b", Value: "World"},
	}}
}

func TestBuild(t *testing.T) {
	p := Build(testBatch(), "Simplified Chinese", nil)

	assert.Contains(t, p.System, "English to Simplified Chinese")
	assert.Contains(t, p.System, "$variable$")
	assert.Contains(t, p.System, "ONLY a valid JSON object")
	assert.NotContains(t, p.System, "terminology")

	assert.Equal(t, testBatch().JSON(), p.User)
}

func TestBuild_Glossary(t *testing.T) {
	terms := glossary.TermMap{
		"World":  "世界",
		"Anthem": "国歌",
	}

	p := Build(testBatch(), "Simplified Chinese", terms)
	assert.Contains(t, p.System, "established terminology")
	assert.Contains(t, p.System, `"World" -> "世界"`)

	// Sorted term order keeps the prompt deterministic.
	assert.Less(t, strings.Index(p.System, "Anthem"), strings.Index(p.System, "World"))
}

func TestBuild_Deterministic(t *testing.T) {
	terms := glossary.TermMap{"a": "1", "b": "2", "c": "3"}
	first := Build(testBatch(), "German", terms)
	second := Build(testBatch(), "German", terms)
	assert.Equal(t, first, second)
}
