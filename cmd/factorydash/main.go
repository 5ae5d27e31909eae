package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/infrastructure/config"
	"github.com/vsinha/factoryops/pkg/infrastructure/logging"
	"github.com/vsinha/factoryops/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		report             = flag.String("report", "", "Report: all, fg, packing, raw, fifo, orders, planning, daily")
		date               = flag.String("date", "", "As-of date YYYY-MM-DD (default today)")
		from               = flag.String("from", "", "First day of the daily report (default -date)")
		importRecords      = flag.String("import-records", "", "Production records CSV to import")
		importTransactions = flag.String("import-transactions", "", "Stock transactions CSV to import")
		importOrders       = flag.String("import-orders", "", "Sales orders CSV to import")
		syncAction         = flag.String("sync", "", "Remote sync before reporting: push or pull")
		format             = flag.String("format", "text", "Output format: text, json")
		outputDir          = flag.String("output", "", "Output directory for JSON reports (optional)")
		onlyProduction     = flag.Bool("only-production", false, "Build FIFO queues from production lines only")
		envFile            = flag.String("env", ".env", "Environment file to load")
		verbose            = flag.Bool("verbose", false, "Enable verbose output")
		help               = flag.Bool("help", false, "Show help message")

		generateDir = flag.String("generate", "", "Write demo CSV files to this directory and exit")
		days        = flag.Int("days", 7, "Days of demo activity to generate")
		orders      = flag.Int("orders", 10, "Demo sales orders to generate")
		start       = flag.String("start", "", "First demo day YYYY-MM-DD (default day after the stock baseline)")
		seed        = flag.Int64("seed", 0, "Random seed for demo data (0 = time based)")
	)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *generateDir != "" {
		cmd := commands.NewGenerateCommand(commands.GenerateConfig{
			Days:      *days,
			Start:     entities.Date(*start),
			Orders:    *orders,
			OutputDir: *generateDir,
			Seed:      *seed,
			Help:      *help,
			Verbose:   *verbose,
		})
		if err := cmd.Execute(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	settings, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(settings.LogLevel, settings.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create command configuration
	cfg := commands.Config{
		Settings:           settings,
		Report:             *report,
		Date:               *date,
		From:               *from,
		ImportRecords:      *importRecords,
		ImportTransactions: *importTransactions,
		ImportOrders:       *importOrders,
		Sync:               *syncAction,
		Format:             *format,
		OutputDir:          *outputDir,
		OnlyProduction:     *onlyProduction,
		Verbose:            *verbose,
		Help:               *help,
	}

	// Create and execute command
	cmd := commands.NewFactoryCommand(cfg, logger)
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
