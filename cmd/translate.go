package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var translateFlags runFlags

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a mod's English localization files once",
	Example: `  modloc translate --src ./mymod/localization/english --dst ./mymod_zh \
      --language simp_chinese`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, cleanup, err := buildService(translateFlags)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := svc.Run(cmd.Context())
		if err != nil {
			return err
		}

		printReport(report)
		if failed := report.Failed(); failed > 0 {
			return fmt.Errorf("%d file(s) failed to translate", failed)
		}
		return nil
	},
}

func init() {
	f := translateCmd.Flags()
	f.StringVar(&translateFlags.src, "src", "", "source directory with *_l_english.yml files (required)")
	f.StringVar(&translateFlags.dst, "dst", "", "destination mod directory (required)")
	f.StringVar(&translateFlags.language, "language", "", "target language code (see 'modloc languages')")
	f.StringVar(&translateFlags.model, "model", "", "completion model (default from env or .modloc.yaml)")
	f.IntVar(&translateFlags.batchLimit, "batch-limit", 0, "serialized batch size budget in characters")
	f.StringVar(&translateFlags.cache, "cache", "", "translation memory database path")
	f.StringVar(&translateFlags.glossaryPath, "glossary", "", "glossary file (default: discovered near --src)")
	f.StringVar(&translateFlags.proxy, "proxy", "", "HTTP proxy for API requests")
	f.BoolVar(&translateFlags.strictLanguage, "strict-language", false,
		"fail batches whose output does not read as the target language")

	_ = translateCmd.MarkFlagRequired("src")
	_ = translateCmd.MarkFlagRequired("dst")

	rootCmd.AddCommand(translateCmd)
}
