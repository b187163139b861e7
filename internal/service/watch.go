package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/pdxmods/modloc/internal/locfile"
	"github.com/pdxmods/modloc/pkg/file"
	"github.com/pdxmods/modloc/pkg/log"
)

// Watcher reruns the service on a cron schedule. The first trigger
// translates everything; later triggers only pick up source files modified
// since the previous trigger.
type Watcher struct {
	svc      *Service
	cronExpr string
	cron     *cron.Cron

	lastTrigger time.Time
	group       singleflight.Group
}

func NewWatcher(svc *Service, cronExpr string, c *cron.Cron) *Watcher {
	return &Watcher{svc: svc, cronExpr: cronExpr, cron: c}
}

// Schedule registers the watch job. Overlapping triggers collapse into the
// running one instead of stacking translation runs.
func (w *Watcher) Schedule(ctx context.Context) error {
	runFunc := func() {
		_, _, _ = w.group.Do("run", func() (any, error) {
			w.trigger(ctx)
			return nil, nil
		})
	}
	_, err := w.cron.AddFunc(w.cronExpr, runFunc)
	return err
}

func (w *Watcher) trigger(ctx context.Context) {
	since := w.lastTrigger
	w.lastTrigger = time.Now()

	var (
		paths []string
		err   error
	)
	if since.IsZero() {
		paths, err = locfile.FindSources(w.svc.cfg.SourceDir)
	} else {
		paths, err = file.FindRecentAfter(w.svc.cfg.SourceDir, since, locfile.IsSource)
	}
	if err != nil {
		log.Error("Watch scan failed: %v", err)
		return
	}
	if len(paths) == 0 {
		log.Debug("Watch trigger: nothing changed since %v", since)
		return
	}

	report := w.svc.RunPaths(ctx, paths)
	if report.Failed() > 0 {
		log.Error("Watch run %s: %d file(s) failed", report.RunID, report.Failed())
	}
}
