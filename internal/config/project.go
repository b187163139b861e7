package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the per-mod configuration file, looked up in the
// source directory.
const ProjectFileName = ".modloc.yaml"

// ProjectFile is the schema of .modloc.yaml. Every field is optional;
// CLI flags override anything set here.
type ProjectFile struct {
	// Language is the default target language code, e.g. "simp_chinese".
	Language string `yaml:"language"`
	// Model overrides the completion model.
	Model string `yaml:"model"`
	// BatchLimit overrides the serialized batch size budget.
	BatchLimit int `yaml:"batch_limit"`
	// Cache is the translation memory path.
	Cache string `yaml:"cache"`
	// Glossary is an explicit glossary file path.
	Glossary string `yaml:"glossary"`
	// StrictLanguage fails batches whose output does not read as the
	// target language.
	StrictLanguage bool `yaml:"strict_language"`
	// Cron is the watch mode schedule.
	Cron string `yaml:"cron"`
}

// LoadProjectFile reads .modloc.yaml from dir. A missing file is not an
// error; it returns nil so callers can fall through to env and defaults.
func LoadProjectFile(dir string) (*ProjectFile, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &pf, nil
}

// Apply merges the project file into cfg. Zero values leave cfg untouched.
func (pf *ProjectFile) Apply(cfg *Config) {
	if pf == nil {
		return
	}
	if pf.Model != "" {
		cfg.LLM.Model = pf.Model
	}
	if pf.BatchLimit > 0 {
		cfg.Run.BatchLimit = pf.BatchLimit
	}
	if pf.Cache != "" {
		cfg.Run.CachePath = pf.Cache
	}
	if pf.Glossary != "" {
		cfg.Run.GlossaryPath = pf.Glossary
	}
	if pf.StrictLanguage {
		cfg.Run.StrictLanguage = true
	}
	if pf.Cron != "" {
		cfg.Run.CronExpr = pf.Cron
	}
}
