package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concierge/internal/env"
)

var cfg env.Config

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Shrine and course concierge for Fukuoka",
	Long:  `Answer free-text questions about shrines and walking courses, and plan short shrine routes near the user.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			log.SetLevel(log.DebugLevel)
		}
		if cmd.Flags().Changed("source") {
			cfg.Source, _ = cmd.Flags().GetString("source")
		}
	},
}

func main() {
	env.LoadEnv()
	cfg = env.Load()

	rootCmd.PersistentFlags().String("source", cfg.Source, "data source: postgres, s3, csv or xlsx")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd(), askCmd(), routeCmd(), consumeCmd(), publishCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
