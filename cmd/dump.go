package cmd

import (
	"fmt"

	"github.com/agentic-research/grimoire/internal/ingest"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [db] [key...]",
	Short: "List a compendium built with --db, or print stored documents",
	Long: `Without keys, list every document of a compendium built with --db, one
line per document in key order. With keys, print those documents as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		db, keys := args[0], args[1:]

		if len(keys) == 0 {
			n := 0
			err := ingest.StreamCompendium(db, func(e ingest.Entry) error {
				n++
				_, err := fmt.Fprintf(out, "%-40s %-8s %-10s %s (%s)\n", e.Key, e.Collection, e.Type, e.Name, e.SourcePath)
				return err
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%d documents\n", n)
			return nil
		}

		docs, err := ingest.LoadCompendium(db)
		if err != nil {
			return err
		}
		opts := &oj.Options{Indent: 2, Sort: true}
		for _, k := range keys {
			doc, ok := docs[k]
			if !ok {
				return fmt.Errorf("no document with key %s in %s", k, db)
			}
			_, _ = fmt.Fprintln(out, oj.JSON(doc, opts))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
