package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/comparables-api/internal/service"
)

var (
	analyzeMaxComparables int
	analyzeMinScore       int
	analyzeNoComparables  bool
	analyzeRetries        int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <company name>",
	Short: "Run the full comparative analysis",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		name := strings.Join(args, " ")
		opts := service.AnalyzeOptions{
			IncludeComparables: !analyzeNoComparables,
			MaxComparables:     analyzeMaxComparables,
			MinSimilarity:      analyzeMinScore,
		}
		res, err := withRetries(cmd.Context(), analyzeRetries, func(ctx context.Context) (*service.AnalyzeResult, error) {
			return env.Service.Analyze(ctx, name, opts)
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeMaxComparables, "max-comparables", 10, "maximum comparables to include")
	analyzeCmd.Flags().IntVar(&analyzeMinScore, "min-similarity", 30, "minimum similarity score (0-100)")
	analyzeCmd.Flags().BoolVar(&analyzeNoComparables, "no-comparables", false, "skip comparable discovery")
	analyzeCmd.Flags().IntVar(&analyzeRetries, "retries", 0, "retry transient backend failures this many times")
	rootCmd.AddCommand(analyzeCmd)
}
