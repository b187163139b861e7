// Package glossary manages per-mod terminology files so recurring proper
// nouns translate the same way in every batch and every run.
package glossary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TermMap maps English terms to their fixed target-language translations.
type TermMap map[string]string

// Filename returns the glossary file name for a target language code,
// e.g. "term_map.english-simp_chinese.json".
func Filename(targetLang string) string {
	return "term_map.english-" + targetLang + ".json"
}

// FindInAncestors walks up from startDir looking for the target language's
// glossary file, so a mod checked out anywhere below the glossary still
// picks it up. Returns the first hit or "".
func FindInAncestors(startDir, targetLang string) string {
	name := Filename(targetLang)
	dir := startDir

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load reads a glossary from a JSON file.
func Load(path string) (TermMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}

	var tm TermMap
	if err := json.Unmarshal(data, &tm); err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", path, err)
	}
	return tm, nil
}

// Save writes a glossary to a JSON file with indentation.
func Save(path string, tm TermMap) error {
	data, err := json.MarshalIndent(tm, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Match filters tm down to the terms that actually occur in texts.
// Matching is case-sensitive substring search; glossary terms are proper
// nouns, so case carries meaning.
func Match(tm TermMap, texts []string) TermMap {
	matched := make(TermMap)
	for source, target := range tm {
		for _, text := range texts {
			if strings.Contains(text, source) {
				matched[source] = target
				break
			}
		}
	}
	return matched
}
