package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"TWStockBoard/internal/dashboard"
	"TWStockBoard/internal/notifier"
	"TWStockBoard/internal/roc"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		startYear, startMonth int
		endYear, endMonth     string
		asJSON                bool
		perMonth              int
	)
	today := time.Now()
	cmd := &cobra.Command{
		Use:   "report <company name or code>",
		Short: "Build the dashboard report for one company",
		Example: `  board report 2330
  board report 台積電 --start-year 112 --start-month 6 --end-year 113 --end-month 3
  board report 0050 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			w := roc.ResolveWindow(startYear, startMonth, endYear, endMonth, time.Now())
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			keyword := strings.Join(args, " ")
			r, err := a.service.Build(ctx, dashboard.Query{Keyword: keyword, Start: w.Start, End: w.End, NewsPerMonth: perMonth})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), notifier.FormatError(keyword, err))
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatReport(r))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&startYear, "start-year", roc.FromAD(today), "start ROC year")
	f.IntVar(&startMonth, "start-month", int(today.Month()), "start month")
	f.StringVar(&endYear, "end-year", "", "end ROC year (blank: today)")
	f.StringVar(&endMonth, "end-month", "", "end month (blank with end year: December)")
	f.BoolVar(&asJSON, "json", false, "print the report as JSON")
	f.IntVar(&perMonth, "news-per-month", 0, "headlines per month (0: config value)")
	return cmd
}

func newCompaniesCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "companies [keyword]",
		Short: "Search the company directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()

			kw := ""
			if len(args) > 0 {
				kw = args[0]
			}
			matches := a.directory.Search(cmd.Context(), kw)
			for _, at := range a.directory.Attempts() {
				status := "ok"
				if !at.OK() {
					status = at.Err.Error()
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "source %s: %d records (%s)\n", at.Source, at.Records, status)
			}
			for i, m := range matches {
				if limit > 0 && i >= limit {
					fmt.Fprintf(cmd.OutOrStdout(), "... %d more\n", len(matches)-limit)
					break
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.Label())
			}
			if len(matches) == 0 {
				return fmt.Errorf("no company matches %q", kw)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum matches to print (0: all)")
	return cmd
}
