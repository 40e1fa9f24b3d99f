// Package main is the doccheck command line tool. It runs the conflict
// detection pipeline over local text files without the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doccheck",
	Short: "Find contradicting policy statements across documents",
	Long: `doccheck splits documents into sentences, pre-filters sentence pairs that
share numbers or enough words, and asks a language model whether each pair
contradicts. Every contradiction is reported with both source sentences.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: $CONFIG_PATH or config/config.toml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
