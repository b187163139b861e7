// Package batch groups localization entries into bounded-size batches for
// translation requests.
package batch

import (
	"bytes"
	"encoding/json"

	"github.com/pdxmods/modloc/internal/locfile"
)

// DefaultLimit is the default serialized-size budget per batch.
const DefaultLimit = 2500

// Batch is a contiguous run of entries from one file. Batches never cross
// file boundaries.
type Batch struct {
	Entries []locfile.Entry
}

// Keys returns the batch's keys in entry order.
func (b Batch) Keys() []string {
	keys := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the batch's source texts in entry order.
func (b Batch) Values() []string {
	values := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		values[i] = e.Value
	}
	return values
}

// JSON serializes the batch as a JSON object, keys in entry order.
// encoding/json sorts map keys, so the object is built by hand.
func (b Batch) JSON() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range b.Entries {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, _ := json.Marshal(e.Key)
		value, _ := json.Marshal(e.Value)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.String()
}

// Size is the serialized-JSON length of the batch, the measure Split
// budgets against.
func (b Batch) Size() int {
	size := 2 // braces
	for _, e := range b.Entries {
		size += entryCost(e)
	}
	return size
}

func entryCost(e locfile.Entry) int {
	key, _ := json.Marshal(e.Key)
	value, _ := json.Marshal(e.Value)
	return len(key) + len(value) + 4 // ": " and ", "
}

// Split cuts entries into batches of maximal prefixes whose serialized size
// stays within limit. An entry that alone exceeds the limit is emitted as
// its own oversized batch rather than failing; the completion service sees
// a too-long request it can still often satisfy, whereas dropping the entry
// would lose the key. Deterministic: same entries and limit always produce
// the same boundaries.
func Split(entries []locfile.Entry, limit int) []Batch {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var batches []Batch
	var current []locfile.Entry
	size := 2

	for _, e := range entries {
		cost := entryCost(e)
		if len(current) > 0 && size+cost > limit {
			batches = append(batches, Batch{Entries: current})
			current = nil
			size = 2
		}
		current = append(current, e)
		size += cost
	}
	if len(current) > 0 {
		batches = append(batches, Batch{Entries: current})
	}
	return batches
}
