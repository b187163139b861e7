package cmd

import (
	"fmt"

	"github.com/pdxmods/modloc/internal/config"
	"github.com/pdxmods/modloc/internal/glossary"
	"github.com/pdxmods/modloc/internal/lang"
	"github.com/pdxmods/modloc/internal/llm"
	"github.com/pdxmods/modloc/internal/service"
	"github.com/pdxmods/modloc/internal/store"
	"github.com/pdxmods/modloc/internal/translator"
	"github.com/pdxmods/modloc/pkg/log"
)

// runFlags are the flags shared by translate and watch.
type runFlags struct {
	src            string
	dst            string
	language       string
	model          string
	batchLimit     int
	cache          string
	glossaryPath   string
	proxy          string
	strictLanguage bool
}

// buildService resolves configuration (flags > .modloc.yaml > env >
// defaults) and assembles the service. The returned cleanup closes the
// translation memory when one was opened.
func buildService(flags runFlags) (*service.Service, *config.Config, func(), error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, nil, err
	}

	pf, err := config.LoadProjectFile(flags.src)
	if err != nil {
		return nil, nil, nil, err
	}
	pf.Apply(cfg)

	if flags.language == "" && pf != nil {
		flags.language = pf.Language
	}
	if flags.model != "" {
		cfg.LLM.Model = flags.model
	}
	if flags.proxy != "" {
		cfg.LLM.Proxy = flags.proxy
	}
	if flags.batchLimit > 0 {
		cfg.Run.BatchLimit = flags.batchLimit
	}
	if flags.cache != "" {
		cfg.Run.CachePath = flags.cache
	}
	if flags.glossaryPath != "" {
		cfg.Run.GlossaryPath = flags.glossaryPath
	}
	if flags.strictLanguage {
		cfg.Run.StrictLanguage = true
	}

	target, err := lang.Parse(flags.language)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := llm.NewClient(cfg.ToLLMConfig())
	if err != nil {
		return nil, nil, nil, err
	}

	opts := translator.DefaultOptions()
	opts.StrictLanguage = cfg.Run.StrictLanguage
	tr := translator.New(client, target, opts)

	terms, err := loadGlossary(cfg.Run.GlossaryPath, flags.src, target.Code)
	if err != nil {
		return nil, nil, nil, err
	}

	var memory *store.Store
	cleanup := func() {}
	if cfg.Run.CachePath != "" {
		memory, err = store.Open(cfg.Run.CachePath)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup = func() { _ = memory.Close() }
	}

	svc, err := service.New(service.Config{
		SourceDir:  flags.src,
		DestDir:    flags.dst,
		Target:     target,
		BatchLimit: cfg.Run.BatchLimit,
		Terms:      terms,
		Memory:     memory,
	}, tr)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	return svc, cfg, cleanup, nil
}

// loadGlossary loads the explicit glossary path, or discovers one by
// walking up from the source directory. No glossary is not an error.
func loadGlossary(path, srcDir, targetCode string) (glossary.TermMap, error) {
	if path == "" {
		path = glossary.FindInAncestors(srcDir, targetCode)
		if path == "" {
			return nil, nil
		}
	}
	terms, err := glossary.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info("Using glossary %s (%d terms)", path, len(terms))
	return terms, nil
}

func printReport(report *service.Report) {
	fmt.Printf("Run %s: %d translated, %d failed\n",
		report.RunID, report.Translated(), report.Failed())
	for _, f := range report.Files {
		if f.Failed() {
			fmt.Printf("  FAIL %s: %v\n", f.Path, f.Err)
			continue
		}
		fmt.Printf("  OK   %s -> %s (%d batches, %d cache hits)\n",
			f.Path, f.Output, f.Batches, f.CacheHits)
	}
}
