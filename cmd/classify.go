package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [path...]",
	Short: "Show which rule a record path resolves to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rules, err := cfg.RuleSet()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, p := range args {
			rule, ok := rules.Classify(p)
			switch {
			case !ok:
				_, _ = fmt.Fprintf(out, "%s: unmatched\n", p)
			case rule.Skip:
				_, _ = fmt.Fprintf(out, "%s: skip (%s)\n", p, rule.Name)
			default:
				_, _ = fmt.Fprintf(out, "%s: %s -> %s/%s via %s\n", p, rule.Name, rule.Collection, rule.Type, rule.Converter)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
