package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdxmods/modloc/internal/glossary"
)

var glossaryFile string

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Maintain a terminology file for consistent translations",
	Long: `Glossary files (term_map.english-<language>.json) pin the translation
of recurring terms. Matched terms are injected into every translation
prompt, so names stay consistent across batches and runs.`,
}

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := glossary.Load(glossaryFile)
		if err != nil {
			return err
		}

		terms := make([]string, 0, len(tm))
		for term := range tm {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		for _, term := range terms {
			fmt.Printf("%s -> %s\n", term, tm[term])
		}
		return nil
	},
}

var glossaryAddCmd = &cobra.Command{
	Use:   "add <english-term> <translation>",
	Short: "Add or update a glossary entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := glossary.Load(glossaryFile)
		if errors.Is(err, os.ErrNotExist) {
			// A brand new glossary file is fine.
			tm = glossary.TermMap{}
		} else if err != nil {
			return err
		}

		tm[args[0]] = args[1]
		if err := glossary.Save(glossaryFile, tm); err != nil {
			return err
		}
		fmt.Printf("Added %q -> %q\n", args[0], args[1])
		return nil
	},
}

var glossaryRemoveCmd = &cobra.Command{
	Use:   "remove <english-term>",
	Short: "Remove a glossary entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tm, err := glossary.Load(glossaryFile)
		if err != nil {
			return err
		}
		if _, ok := tm[args[0]]; !ok {
			return fmt.Errorf("no glossary entry for %q", args[0])
		}

		delete(tm, args[0])
		if err := glossary.Save(glossaryFile, tm); err != nil {
			return err
		}
		fmt.Printf("Removed %q\n", args[0])
		return nil
	},
}

func init() {
	glossaryCmd.PersistentFlags().StringVar(&glossaryFile, "file", "", "glossary file path (required)")
	_ = glossaryCmd.MarkPersistentFlagRequired("file")

	glossaryCmd.AddCommand(glossaryListCmd)
	glossaryCmd.AddCommand(glossaryAddCmd)
	glossaryCmd.AddCommand(glossaryRemoveCmd)
	rootCmd.AddCommand(glossaryCmd)
}
