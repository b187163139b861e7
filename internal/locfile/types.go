// Package locfile reads and writes Paradox-style localization files.
//
// A localization file is UTF-8 text, usually with a BOM, of the form
//
//	l_english:
//	 key_a:0 "Some text"
//	 key_b: "Other text" # comment
//
// The digit after the colon is a revision counter maintained by the
// game's tooling. It is carried through untouched and never recomputed.
package locfile

// Entry is one key/value line of a localization file.
// Entries are not mutated after parsing; translation builds new ones.
type Entry struct {
	Key      string
	Value    string
	Revision string // digits as found, "" when the line had none
}

// File is one parsed localization file.
type File struct {
	// Name is the base file name, e.g. "units_l_english.yml".
	Name string
	// Language is the code from the header line, e.g. "english".
	Language string
	// Entries hold the key/value pairs in source order.
	Entries []Entry
}

// Keys returns the entry keys in source order.
func (f *File) Keys() []string {
	keys := make([]string, len(f.Entries))
	for i, e := range f.Entries {
		keys[i] = e.Key
	}
	return keys
}
