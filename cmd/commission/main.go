package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commission-calculator/internal"
	"commission-calculator/pkg/format"
	"commission-calculator/pkg/profiling"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	if err := newRootCmd(internal.LoadConfig()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg internal.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "commission",
		Short:        "Calculate commission fees for card transactions",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetLogLoggerLevel(internal.ParseLogLevel(cfg.LogLevel))
			internal.WarnUnrecognizedEUCodes()
		},
	}

	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "logging level (debug|info|warn|error)")
	root.AddCommand(newCalculateCmd(&cfg))
	return root
}

func newCalculateCmd(cfg *internal.Config) *cobra.Command {
	var store bool

	cmd := &cobra.Command{
		Use:   "calculate [file]",
		Short: "Print one commission per transaction line of file (default input.txt)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "input.txt"
			if len(args) == 1 {
				path = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.EnableProfiling {
				stopProfiling := profiling.EnableProfiling("prof", time.Minute*2)
				defer stopProfiling()
			}

			client := internal.NewHTTPClient(cfg.LookupTimeout)
			defer client.Close()

			calculator := internal.NewCalculatorFromConfig(*cfg, client)
			details, err := calculator.CalculateDetailed(ctx, internal.Lines(path))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, fee := range internal.Fees(details) {
				fmt.Fprintln(out, format.FormatCents(fee))
			}

			if store {
				return saveRun(ctx, *cfg, internal.NewRun(details))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.BinProviderUrl, "bin-url", cfg.BinProviderUrl, "BIN lookup base URL")
	cmd.Flags().StringVar(&cfg.CurrencyRatesUrl, "rates-url", cfg.CurrencyRatesUrl, "currency rates URL")
	cmd.Flags().DurationVar(&cfg.LookupTimeout, "timeout", cfg.LookupTimeout, "timeout for each lookup request")
	cmd.Flags().BoolVar(&store, "store", false, "persist the run in the configured results store")
	return cmd
}

func saveRun(ctx context.Context, cfg internal.Config, run internal.Run) error {
	repo, closeRepo, err := internal.OpenRunRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	if repo == nil {
		return fmt.Errorf("--store requires RESULTS_STORE to be set")
	}
	if err := repo.Add(ctx, run); err != nil {
		return err
	}

	slog.Info("run stored", "id", run.ID, "createdAt", format.FormatRFC3339(run.CreatedAt), "totalFee", run.TotalFee)
	return nil
}
