package translator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmods/modloc/internal/glossary"
	"github.com/pdxmods/modloc/internal/lang"
	"github.com/pdxmods/modloc/internal/llm"
)

// fakeClient replays scripted responses and records every prompt it saw.
type fakeClient struct {
	responses []fakeResponse
	calls     int
	systems   []string
	users     []string
}

type fakeResponse struct {
	content string
	err     error
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userPrompt)

	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	r := f.responses[i]
	return r.content, r.err
}

func fastOptions() Options {
	opts := DefaultOptions()
	opts.BackoffBase = time.Millisecond
	return opts
}

func simpChinese(t *testing.T) lang.Language {
	t.Helper()
	l, err := lang.Parse("simp_chinese")
	require.NoError(t, err)
	return l
}

func TestTranslateBatch(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{content: `{"a": "你好 $x$", "b": "世界"}`},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	result, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "你好 $x$", "b": "世界"}, result)
	assert.Equal(t, 1, client.calls)
}

func TestTranslateBatch_GlossaryInPrompt(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{content: `{"a": "你好 $x$", "b": "世界"}`},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	terms := glossary.TermMap{"World": "世界"}
	_, err := tr.TranslateBatch(context.Background(), testBatch(), terms)
	require.NoError(t, err)

	require.Len(t, client.systems, 1)
	assert.Contains(t, client.systems[0], "世界")
	assert.Contains(t, client.systems[0], "Simplified Chinese")
}

// An invalid response gets exactly one retry with the identical prompt.
func TestTranslateBatch_InvalidResponseRetriedOnce(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{content: "sorry, not today"},
		{content: `{"a": "你好 $x$", "b": "世界"}`},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	result, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.NoError(t, err)
	assert.Equal(t, "世界", result["b"])

	require.Equal(t, 2, client.calls)
	assert.Equal(t, client.systems[0], client.systems[1])
	assert.Equal(t, client.users[0], client.users[1])
}

func TestTranslateBatch_InvalidResponseTwiceFails(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{content: "still not json"},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	_, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.Error(t, err)

	var invalid *InvalidResponseError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, client.calls)
}

func TestTranslateBatch_TransientRetried(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.APIError{StatusCode: 429}},
		{err: &llm.APIError{StatusCode: 503}},
		{content: `{"a": "你好 $x$", "b": "世界"}`},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	result, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.NoError(t, err)
	assert.Equal(t, "你好 $x$", result["a"])
	assert.Equal(t, 3, client.calls)
}

func TestTranslateBatch_TransientExhausted(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.APIError{StatusCode: 500}},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	_, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.Error(t, err)
	assert.Equal(t, 3, client.calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

// Authentication and invalid-request failures never retry.
func TestTranslateBatch_FatalNotRetried(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.APIError{StatusCode: 401}},
	}}
	tr := New(client, simpChinese(t), fastOptions())

	_, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestTranslateBatch_ContextCancelled(t *testing.T) {
	t.Parallel()

	client := &fakeClient{responses: []fakeResponse{
		{err: &llm.APIError{StatusCode: 429}},
	}}
	opts := fastOptions()
	opts.BackoffBase = time.Minute
	tr := New(client, simpChinese(t), opts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.TranslateBatch(ctx, testBatch(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslateBatch_StrictLanguage(t *testing.T) {
	t.Parallel()

	// Long English text where Simplified Chinese was requested.
	english := `{"a": "This is still very much English text $x$ left untranslated", ` +
		`"b": "and so is this entire sentence about the world"}`

	client := &fakeClient{responses: []fakeResponse{{content: english}}}
	opts := fastOptions()
	opts.StrictLanguage = true
	tr := New(client, simpChinese(t), opts)

	_, err := tr.TranslateBatch(context.Background(), testBatch(), nil)
	require.Error(t, err)

	var invalid *InvalidResponseError
	assert.ErrorAs(t, err, &invalid)
}
