package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/comparables-api/internal/resilience"
	"github.com/sells-group/comparables-api/internal/service"
)

var (
	lookupDetailed bool
	lookupRetries  int
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <company name>",
	Short: "Look up a company profile",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv()
		if err != nil {
			return err
		}

		name := strings.Join(args, " ")
		res, err := withRetries(cmd.Context(), lookupRetries, func(ctx context.Context) (*service.LookupResult, error) {
			return env.Service.Lookup(ctx, name, service.LookupOptions{Detailed: lookupDetailed})
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

// withRetries wraps a call in the backoff helper when the user asked
// for retries; transient backend failures are retried, auth and "no
// data" outcomes are not.
func withRetries[T any](ctx context.Context, retries int, fn func(ctx context.Context) (T, error)) (T, error) {
	if retries <= 0 {
		return fn(ctx)
	}
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = retries + 1
	return resilience.DoVal(ctx, cfg, fn)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupDetailed, "detailed", false, "issue supplementary queries for a deeper profile")
	lookupCmd.Flags().IntVar(&lookupRetries, "retries", 0, "retry transient backend failures this many times")
	rootCmd.AddCommand(lookupCmd)
}
