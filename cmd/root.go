// Package cmd holds the modloc command tree.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pdxmods/modloc/pkg/log"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "modloc",
	Short: "Translate Paradox mod localization files with an LLM",
	Long: `modloc reads a mod's English localization files and produces translated
equivalents in a supported target language through an OpenAI-compatible
chat completion service.

Credentials come from the environment (LLM_API_KEY or OPENAI_API_KEY),
optionally via a .env file in the working directory. Per-mod defaults can
live in a .modloc.yaml file next to the source files.

Use "modloc translate --help" for translation options.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine; the environment may already be set.
		_ = godotenv.Load()

		level := log.ParseLevel(logLevel)
		if logFile != "" {
			fl, err := log.NewFileLogger(logFile, level)
			if err != nil {
				return err
			}
			log.SetOutput(fl.Logger)
			return nil
		}
		log.InitLogger(level)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"append logs to this file instead of stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
