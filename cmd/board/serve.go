package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/httpapi"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard data as a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Warm the directory so the first request does not pay for it.
			log.Printf("[INFO] company directory: %d records", len(a.directory.Load(ctx)))

			gin.SetMode(gin.ReleaseMode)
			var ns dashboard.NewsSource
			if a.news != nil {
				ns = a.news
			}
			h := httpapi.NewHandler(a.directory, a.history, a.service, ns, a.cfg.News.PerMonth)
			return httpapi.Serve(ctx, addr, httpapi.NewRouter(h, a.cfg.HTTP.FrontendURL))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
