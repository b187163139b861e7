package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmods/modloc/internal/store"
)

var cachePath string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the translation memory",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show translation memory statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cachePath)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.GetStats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Entries:   %d\n", stats.Entries)
		fmt.Printf("Reuses:    %d\n", stats.Reuses)
		fmt.Printf("Languages: %s\n", strings.Join(stats.Languages, ", "))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every remembered translation",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cachePath)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Translation memory cleared.")
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "translation memory database path (required)")
	_ = cacheCmd.MarkPersistentFlagRequired("cache")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
