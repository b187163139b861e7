// Package service orchestrates a translation run: scan the source
// directory, translate each localization file batch by batch, and write the
// results into the destination mod layout. Failure is isolated per file; one
// bad file never stops the run.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pdxmods/modloc/internal/batch"
	"github.com/pdxmods/modloc/internal/glossary"
	"github.com/pdxmods/modloc/internal/lang"
	"github.com/pdxmods/modloc/internal/locfile"
	"github.com/pdxmods/modloc/internal/store"
	"github.com/pdxmods/modloc/internal/translator"
	"github.com/pdxmods/modloc/pkg/log"
)

// Config is the per-run configuration.
type Config struct {
	SourceDir  string
	DestDir    string
	Target     lang.Language
	BatchLimit int
	// Glossary terms pinned for this run; nil disables the feature.
	Terms glossary.TermMap
	// Memory is the optional translation memory; nil disables caching.
	Memory *store.Store
}

// Service runs translations for one source/destination/language triple.
type Service struct {
	cfg        Config
	translator *translator.Translator
}

func New(cfg Config, tr *translator.Translator) (*Service, error) {
	if cfg.SourceDir == "" {
		return nil, NewError(ErrConfig, "source directory is required")
	}
	if cfg.DestDir == "" {
		return nil, NewError(ErrConfig, "destination directory is required")
	}
	if cfg.Target.Code == "" {
		return nil, NewError(ErrConfig, "target language is required")
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = batch.DefaultLimit
	}
	return &Service{cfg: cfg, translator: tr}, nil
}

// FileStatus is the outcome for one source file.
type FileStatus struct {
	Path      string
	Output    string
	Err       error
	Batches   int
	CacheHits int
}

func (f FileStatus) Failed() bool { return f.Err != nil }

// Report summarizes one run.
type Report struct {
	RunID string
	Files []FileStatus
}

// Failed counts files that did not translate.
func (r *Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

// Translated counts files written successfully.
func (r *Report) Translated() int {
	return len(r.Files) - r.Failed()
}

// Run translates every English source file under the source directory.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	paths, err := locfile.FindSources(s.cfg.SourceDir)
	if err != nil {
		return nil, WrapError(err, ErrConfig, "scan source directory")
	}
	return s.RunPaths(ctx, paths), nil
}

// RunPaths translates the given source files sequentially. Per-file
// failures land in the report; only context cancellation aborts the run.
func (s *Service) RunPaths(ctx context.Context, paths []string) *Report {
	report := &Report{RunID: uuid.NewString()}
	log.Info("Run %s: translating %d file(s) to %s", report.RunID, len(paths), s.cfg.Target.Code)

	for _, path := range paths {
		status := s.translateFile(ctx, path)
		report.Files = append(report.Files, status)

		if status.Failed() {
			log.Error("Failed %s: %v", path, status.Err)
			if errors.Is(status.Err, context.Canceled) || errors.Is(status.Err, context.DeadlineExceeded) {
				break
			}
			continue
		}
		log.Info("Translated %s -> %s (%d batches, %d cache hits)",
			path, status.Output, status.Batches, status.CacheHits)
	}

	log.Info("Run %s finished: %d translated, %d failed",
		report.RunID, report.Translated(), report.Failed())
	return report
}

// translateFile runs the whole pipeline for one source file. Output is
// written only after every batch of the file has validated; a failed batch
// leaves no partial file behind.
func (s *Service) translateFile(ctx context.Context, path string) FileStatus {
	status := FileStatus{Path: path}

	f, err := locfile.ReadFile(path)
	if err != nil {
		var perr *locfile.ParseError
		if errors.As(err, &perr) {
			status.Err = WrapError(err, ErrParse, "malformed localization file").WithContext("file", path)
		} else {
			status.Err = WrapError(err, ErrParse, "unreadable localization file").WithContext("file", path)
		}
		return status
	}

	translations := make(map[string]string, len(f.Entries))

	// Translation memory first; only misses go to the model.
	var misses []locfile.Entry
	for _, e := range f.Entries {
		if s.cfg.Memory == nil {
			misses = append(misses, e)
			continue
		}
		cached, ok, err := s.cfg.Memory.Lookup(ctx, e.Value, "english", s.cfg.Target.Code)
		if err != nil {
			log.Warn("Translation memory lookup failed for %q: %v", e.Key, err)
		}
		if ok {
			translations[e.Key] = cached
			status.CacheHits++
			continue
		}
		misses = append(misses, e)
	}

	batches := batch.Split(misses, s.cfg.BatchLimit)
	status.Batches = len(batches)

	for i, b := range batches {
		terms := glossary.Match(s.cfg.Terms, b.Values())

		result, err := s.translator.TranslateBatch(ctx, b, terms)
		if err != nil {
			status.Err = s.classifyBatchError(err).
				WithContext("file", path).
				WithContext("batch", fmt.Sprintf("%d/%d", i+1, len(batches)))
			return status
		}

		for key, text := range result {
			translations[key] = text
		}
		if s.cfg.Memory != nil {
			for _, e := range b.Entries {
				if err := s.cfg.Memory.Save(ctx, e.Value, "english", s.cfg.Target.Code, result[e.Key]); err != nil {
					log.Warn("Translation memory save failed for %q: %v", e.Key, err)
				}
			}
		}
	}

	translated, err := f.WithTranslations(s.cfg.Target.Code, translations)
	if err != nil {
		status.Err = WrapError(err, ErrBatch, "incomplete translation").WithContext("file", path)
		return status
	}

	out := locfile.OutputPath(s.cfg.DestDir, f.Name, s.cfg.Target.Code)
	if err := locfile.WriteFile(out, translated); err != nil {
		status.Err = WrapError(err, ErrWrite, "write translated file").WithContext("file", out)
		return status
	}
	status.Output = out
	return status
}

func (s *Service) classifyBatchError(err error) *ModLocError {
	var invalid *translator.InvalidResponseError
	if errors.As(err, &invalid) {
		return WrapError(err, ErrInvalidResponse, "model response rejected")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return WrapError(err, ErrBatch, "run cancelled")
	}
	return WrapError(err, ErrBatch, "batch translation failed")
}
