package cmd

import (
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pdxmods/modloc/internal/service"
	"github.com/pdxmods/modloc/pkg/log"
)

var (
	watchFlags runFlags
	watchCron  string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-translate changed source files on a cron schedule",
	Long: `Runs the translate pipeline repeatedly. The first trigger translates
every source file; later triggers only pick up files modified since the
previous trigger. Overlapping triggers collapse into the running one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, cleanup, err := buildService(watchFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		expr := watchCron
		if expr == "" {
			expr = cfg.Run.CronExpr
		}

		c := cron.New()
		watcher := service.NewWatcher(svc, expr, c)
		if err := watcher.Schedule(cmd.Context()); err != nil {
			return err
		}

		log.Info("Watching %s on schedule %q", watchFlags.src, expr)
		c.Run() // blocks
		return nil
	},
}

func init() {
	f := watchCmd.Flags()
	f.StringVar(&watchFlags.src, "src", "", "source directory with *_l_english.yml files (required)")
	f.StringVar(&watchFlags.dst, "dst", "", "destination mod directory (required)")
	f.StringVar(&watchFlags.language, "language", "", "target language code (see 'modloc languages')")
	f.StringVar(&watchFlags.model, "model", "", "completion model (default from env or .modloc.yaml)")
	f.IntVar(&watchFlags.batchLimit, "batch-limit", 0, "serialized batch size budget in characters")
	f.StringVar(&watchFlags.cache, "cache", "", "translation memory database path")
	f.StringVar(&watchFlags.glossaryPath, "glossary", "", "glossary file (default: discovered near --src)")
	f.StringVar(&watchFlags.proxy, "proxy", "", "HTTP proxy for API requests")
	f.BoolVar(&watchFlags.strictLanguage, "strict-language", false,
		"fail batches whose output does not read as the target language")
	f.StringVar(&watchCron, "cron", "", "cron schedule (default MODLOC_CRON or @every 6h)")

	_ = watchCmd.MarkFlagRequired("src")
	_ = watchCmd.MarkFlagRequired("dst")

	rootCmd.AddCommand(watchCmd)
}
