package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/comparables-api/internal/service"
)

var (
	comparablesMax         int
	comparablesMinScore    int
	comparablesSameCountry bool
	comparablesRetries     int
)

var comparablesCmd = &cobra.Command{
	Use:   "comparables <company name>",
	Short: "Discover comparable companies",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		name := strings.Join(args, " ")
		opts := service.ComparablesOptions{
			MaxResults:        comparablesMax,
			MinSimilarity:     comparablesMinScore,
			PreferSameCountry: comparablesSameCountry,
		}
		res, err := withRetries(cmd.Context(), comparablesRetries, func(ctx context.Context) (*service.ComparablesResult, error) {
			return env.Service.Comparables(ctx, name, opts)
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	comparablesCmd.Flags().IntVar(&comparablesMax, "max", 10, "maximum comparables to return")
	comparablesCmd.Flags().IntVar(&comparablesMinScore, "min-similarity", 30, "minimum similarity score (0-100)")
	comparablesCmd.Flags().BoolVar(&comparablesSameCountry, "same-country", false, "rank same-country candidates first")
	comparablesCmd.Flags().IntVar(&comparablesRetries, "retries", 0, "retry transient backend failures this many times")
	rootCmd.AddCommand(comparablesCmd)
}
