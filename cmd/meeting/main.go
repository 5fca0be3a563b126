package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"investment-company/config"
	"investment-company/internal/app"
	"investment-company/observability"
)

var (
	symbolList string
	startDate  string
	endDate    string
	interval   string
	outputPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "meeting",
		Short: "Run an investment meeting over a symbol batch",
		Long: `Runs the full scoring pipeline for each symbol: price history,
indicators, the four-analyst panel, portfolio synthesis and a backtest,
then prints the per-symbol decisions as JSON.

Examples:
  meeting --symbols AAPL,MSFT --start 2023-01-02 --end 2024-01-02
  meeting --symbols AAPL --start 2023-01-06 --end 2024-01-05 --interval 1w --output decisions.json`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&symbolList, "symbols", "", "comma-separated ticker symbols (required)")
	rootCmd.Flags().StringVar(&startDate, "start", "", "history start date, YYYY-MM-DD (required)")
	rootCmd.Flags().StringVar(&endDate, "end", "", "history end date, YYYY-MM-DD (required)")
	rootCmd.Flags().StringVar(&interval, "interval", "", "bar interval: 1d or 1w (default from config)")
	rootCmd.Flags().StringVar(&outputPath, "output", "", "write the JSON result to this file instead of stdout")
	rootCmd.MarkFlagRequired("symbols")
	rootCmd.MarkFlagRequired("start")
	rootCmd.MarkFlagRequired("end")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil {
		observability.Info("no .env file found, using environment variables")
	}

	observability.InitLogger(os.Getenv("ENV") == "production")
	observability.InitMetrics()

	symbols := splitSymbols(symbolList)
	if len(symbols) == 0 {
		return fmt.Errorf("at least one symbol is required, pass --symbols AAPL,MSFT")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return fmt.Errorf("invalid --start date %q, expected YYYY-MM-DD", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return fmt.Errorf("invalid --end date %q, expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return fmt.Errorf("--end must not precede --start")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if interval != "" {
		cfg.Meeting.Interval = interval
	}

	ctx := context.Background()
	application := app.New(ctx, cfg)
	defer application.Close()

	result := application.Meeting().Run(ctx, symbols, start, end)

	for symbol, reason := range result.Failures {
		observability.Warn("symbol failed", "symbol", symbol, "reason", reason)
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	encoded = append(encoded, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		observability.Info("result written", "path", outputPath, "decisions", len(result.Decisions))
		return nil
	}

	_, err = cmd.OutOrStdout().Write(encoded)
	return err
}

func splitSymbols(raw string) []string {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(part))
		if symbol != "" {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
