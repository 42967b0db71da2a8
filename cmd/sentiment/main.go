// Command sentiment scores review text from the command line.
//
//	sentiment "not very good" "soggy and cold"
//	cat reviews.txt | sentiment
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		lexiconPath string
		pretty      bool
	)

	cmd := &cobra.Command{
		Use:   "sentiment [text...]",
		Short: "Score food review text with the keyword sentiment scorer",
		Long: `Score each argument, or each line of stdin when no arguments are given,
and print one JSON object per input with its score and label.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := loadScorer(lexiconPath)
			if err != nil {
				return err
			}
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), scorer, args, pretty)
		},
	}

	cmd.Flags().StringVar(&lexiconPath, "lexicon", "", "YAML word list to use instead of the built-in lexicon")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
