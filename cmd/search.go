package cmd

import (
	"fmt"
	"strings"

	"github.com/agentic-research/grimoire/internal/ingest"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [index] [query...]",
	Short: "Query a search index built with --index",
	Long: `Query a search index built with --index. The query uses query string
syntax: plain words match names and descriptions, field:value restricts
by key, type or collection ("type:spell fire", "+collection:actors ogre").`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		hits, total, err := ingest.Search(args[0], strings.Join(args[1:], " "), searchLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, h := range hits {
			_, _ = fmt.Fprintf(out, "%6.3f  %-40s %s (%s)\n", h.Score, h.Key, h.Name, h.Type)
		}
		_, _ = fmt.Fprintf(out, "%d of %d matches\n", len(hits), total)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
