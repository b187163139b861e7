// Package translator turns batches of English localization entries into
// target-language text through a completion client, validating the model's
// output before accepting it.
package translator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdxmods/modloc/internal/batch"
	"github.com/pdxmods/modloc/internal/glossary"
	"github.com/pdxmods/modloc/internal/lang"
	"github.com/pdxmods/modloc/internal/llm"
	"github.com/pdxmods/modloc/internal/prompt"
	"github.com/pdxmods/modloc/pkg/log"
)

// Client is the completion surface the translator needs. *llm.Client
// satisfies it; tests substitute a fake.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Options tune the retry policy and validation strictness.
type Options struct {
	// MaxAttempts bounds attempts against transient failures per batch.
	MaxAttempts int
	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration
	// InvalidRetries is how many times an invalid (but delivered) response
	// is retried with the identical prompt.
	InvalidRetries int
	// StrictLanguage upgrades language-detection warnings to failures.
	StrictLanguage bool
}

// DefaultOptions returns the conservative defaults: three attempts with
// exponential backoff and one retry on an invalid response.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:    3,
		BackoffBase:    time.Second,
		InvalidRetries: 1,
	}
}

// Translator translates batches into one target language.
type Translator struct {
	client Client
	target lang.Language
	opts   Options
}

func New(client Client, target lang.Language, opts Options) *Translator {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Translator{client: client, target: target, opts: opts}
}

// TranslateBatch sends one batch and returns the validated key→translation
// mapping. Transient client failures are retried with exponential backoff;
// an invalid response is retried with the identical prompt. Either budget
// running out fails the batch.
func (t *Translator) TranslateBatch(ctx context.Context, b batch.Batch, terms glossary.TermMap) (map[string]string, error) {
	p := prompt.Build(b, t.target.Name, terms)

	invalidLeft := t.opts.InvalidRetries
	var lastErr error

	for attempt := 1; attempt <= t.opts.MaxAttempts; attempt++ {
		raw, err := t.client.Complete(ctx, p.System, p.User)
		if err != nil {
			if !transient(err) {
				return nil, fmt.Errorf("translation request: %w", err)
			}
			lastErr = err
			if attempt < t.opts.MaxAttempts {
				delay := t.backoff(attempt)
				log.Warn("Transient failure on batch of %d entries (attempt %d/%d), retrying in %v: %v",
					len(b.Entries), attempt, t.opts.MaxAttempts, delay, err)
				if err := sleep(ctx, delay); err != nil {
					return nil, err
				}
			}
			continue
		}

		result, err := Decode(raw, b)
		if err != nil {
			lastErr = err
			if invalidLeft > 0 {
				invalidLeft--
				log.Warn("Invalid response for batch of %d entries, retrying with the same prompt: %v",
					len(b.Entries), err)
				// Does not consume a transient attempt.
				attempt--
				continue
			}
			return nil, err
		}

		if !t.opts.StrictLanguage {
			t.checkLanguage(result)
		} else {
			if err := t.verifyLanguage(result); err != nil {
				lastErr = err
				if invalidLeft > 0 {
					invalidLeft--
					attempt--
					continue
				}
				return nil, err
			}
		}
		return result, nil
	}

	return nil, fmt.Errorf("batch failed after %d attempts: %w", t.opts.MaxAttempts, lastErr)
}

func (t *Translator) backoff(attempt int) time.Duration {
	delay := t.opts.BackoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// checkLanguage logs a warning for translations that do not read as the
// target language. Proper nouns and short strings legitimately stay
// untranslated, so by default this never fails the batch.
func (t *Translator) checkLanguage(result map[string]string) {
	for key, text := range result {
		if !lang.Verify(text, t.target) {
			log.Warn("Translation for %q does not look like %s: %q", key, t.target.Name, text)
		}
	}
}

func (t *Translator) verifyLanguage(result map[string]string) error {
	for key, text := range result {
		if !lang.Verify(text, t.target) {
			return &InvalidResponseError{
				Reason: fmt.Sprintf("translation for %q is not in %s", key, t.target.Name),
			}
		}
	}
	return nil
}

func transient(err error) bool {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Transient()
	}
	return false
}
