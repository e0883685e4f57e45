package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"TWStockBoard/internal/notifier"
	"TWStockBoard/internal/scheduler"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Send scheduled watchlist reports to Telegram and answer chat commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.cfg.ValidateTelegram(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tg := notifier.NewTelegram(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
			sched := scheduler.NewScheduler(ctx, a.service, a.directory, tg, a.cfg.Schedule.Watchlist, a.cfg.Schedule.LookbackMonths)
			if err := sched.RegisterAll(a.cfg.Schedule.ReportCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			go tg.StartPolling(ctx, sched.HandleCommand)
			log.Println("[INFO] Telegram polling started")

			if runOnStart {
				log.Println("[INFO] --run-now set, sending watchlist reports")
				go sched.RunReportsNow()
			}

			log.Println("[INFO] watcher is running. Press Ctrl+C to stop.")
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-now", false, "send the watchlist reports immediately")
	return cmd
}
