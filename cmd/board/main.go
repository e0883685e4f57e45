package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "board",
		Short:         "Taiwan stock dashboard: prices, indicators and monthly news",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", cfgPath, "path to the YAML config file")
	root.PersistentFlags().BoolVar(&opts.offline, "offline", false, "use synthetic prices instead of the exchange")

	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newCompaniesCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	return root
}
