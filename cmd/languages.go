package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdxmods/modloc/internal/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported target languages",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range lang.Supported() {
			fmt.Printf("%-14s %s\n", l.Code, l.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
