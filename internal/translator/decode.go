package translator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdxmods/modloc/internal/batch"
	"github.com/pdxmods/modloc/internal/placeholder"
)

// InvalidResponseError means the model's output was delivered but unusable:
// not JSON, wrong key set, or markup lost in translation.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return "invalid model response: " + e.Reason
}

var markdownCodeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// unwrap strips the decoration models like to add around JSON output: a
// markdown code fence and any prose before the first '{' or after the last
// '}'. What remains must parse strictly.
func unwrap(raw string) string {
	if m := markdownCodeFence.FindStringSubmatch(raw); len(m) > 1 {
		raw = m[1]
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return raw
}

// Decode parses a model response for b and validates it: strict JSON, key
// set exactly equal to the batch's, and every placeholder token of every
// source value present verbatim in its translation. There is no partial
// acceptance; any violation rejects the whole batch.
func Decode(raw string, b batch.Batch) (map[string]string, error) {
	var result map[string]string
	if err := json.Unmarshal([]byte(unwrap(raw)), &result); err != nil {
		return nil, &InvalidResponseError{Reason: fmt.Sprintf("not a JSON object: %v", err)}
	}

	for _, key := range b.Keys() {
		if _, ok := result[key]; !ok {
			return nil, &InvalidResponseError{Reason: fmt.Sprintf("missing key %q", key)}
		}
	}
	if len(result) != len(b.Entries) {
		for key := range result {
			if !hasKey(b, key) {
				return nil, &InvalidResponseError{Reason: fmt.Sprintf("unexpected key %q", key)}
			}
		}
	}

	for _, e := range b.Entries {
		if missing := placeholder.Verify(e.Value, result[e.Key]); len(missing) > 0 {
			return nil, &InvalidResponseError{
				Reason: fmt.Sprintf("placeholder %s lost from %q", strings.Join(missing, ", "), e.Key),
			}
		}
	}

	return result, nil
}

func hasKey(b batch.Batch, key string) bool {
	for _, e := range b.Entries {
		if e.Key == key {
			return true
		}
	}
	return false
}
