package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comparables-api/internal/config"
	"github.com/sells-group/comparables-api/internal/extract"
	"github.com/sells-group/comparables-api/internal/scoring"
	"github.com/sells-group/comparables-api/internal/service"
	"github.com/sells-group/comparables-api/pkg/searx"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "comparables-api",
	Short: "Company research and comparables service",
	Long:  "Searches the web for company information, extracts structured profiles, discovers comparable companies, and scores them for benchmarking.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// env bundles the long-lived collaborators the commands share.
type env struct {
	Stats   *searx.Stats
	Service *service.Service
}

// initEnv wires the pipeline from the loaded configuration. The searx
// client tolerates missing credentials; it reports "not configured" on
// first use so lookup commands fail with a clear message.
func initEnv() (*env, error) {
	stats := searx.NewStats(cfg.Searx.MaxLoggedErrors)

	tokens := searx.NewTokenProvider(searx.TokenCredentials{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		TenantID:     cfg.OAuth.TenantID,
		Resource:     cfg.OAuth.Resource,
		TokenURL:     cfg.OAuth.TokenURL,
	}, stats)

	client := searx.NewClient(cfg.Searx.BaseURL, tokens, stats,
		searx.WithTimeout(time.Duration(cfg.Searx.TimeoutSecs)*time.Second),
		searx.WithCacheTTL(time.Duration(cfg.Searx.CacheTTLSecs)*time.Second),
		searx.WithRateLimit(cfg.Searx.RatePerSecond, cfg.Searx.RateBurst),
	)

	extractorOpts := []extract.ExtractorOption{
		extract.WithFallbackSector(cfg.Extract.FallbackSector),
		extract.WithFallbackRegion(cfg.Extract.FallbackRegion),
	}
	if cfg.Extract.TaxonomyFile != "" {
		groups, err := extract.LoadTaxonomy(cfg.Extract.TaxonomyFile)
		if err != nil {
			return nil, err
		}
		extractorOpts = append(extractorOpts, extract.WithSectorTaxonomy(groups))
	}
	extractor := extract.NewExtractor(extractorOpts...)

	engine := scoring.NewEngine(scoring.DefaultConfig())

	svc := service.New(client, extractor, engine,
		service.WithMinConfidence(cfg.Extract.MinConfidence),
	)

	return &env{Stats: stats, Service: svc}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
