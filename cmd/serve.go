package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comparables-api/internal/monitoring"
	"github.com/sells-group/comparables-api/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The server refuses to start without backend settings; the CLI
		// lookup commands rely on the gateway's lazy check instead.
		if err := cfg.Validate(); err != nil {
			return err
		}

		env, err := initEnv()
		if err != nil {
			return err
		}

		collector := monitoring.NewCollector(env.Stats, env.Service.Counters())
		alerter := monitoring.NewAlerter(cfg.Monitoring)
		checker := monitoring.NewChecker(collector, alerter, cfg.Monitoring)
		go checker.Run(ctx)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port()),
			Handler: server.New(env.Service, collector).Routes(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func port() int {
	if servePort != 0 {
		return servePort
	}
	return cfg.Server.Port
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
