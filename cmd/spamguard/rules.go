package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewRulesCmd creates the rules command
func NewRulesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule pack",
		Long: `Print the rule table after any overlay is applied. The YAML output is a valid
overlay file, so it is a starting point for tuning weights and lists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			det, err := loadDetector(cmd)
			if err != nil {
				return err
			}
			table := det.Pack().Table()

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(table); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")
	return cmd
}
