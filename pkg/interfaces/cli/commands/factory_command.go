package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/application/services"
	"github.com/vsinha/factoryops/pkg/application/services/fifo"
	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
	domain "github.com/vsinha/factoryops/pkg/domain/services"
	"github.com/vsinha/factoryops/pkg/infrastructure/config"
	"github.com/vsinha/factoryops/pkg/infrastructure/events"
	"github.com/vsinha/factoryops/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/factoryops/pkg/infrastructure/repositories/sqlite"
	"github.com/vsinha/factoryops/pkg/infrastructure/transport"
	"github.com/vsinha/factoryops/pkg/interfaces/cli/output"
)

// Config holds configuration for the factory command
type Config struct {
	Settings *config.Config

	Report             string
	Date               string
	From               string
	ImportRecords      string
	ImportTransactions string
	ImportOrders       string
	Sync               string
	Format             string
	OutputDir          string
	OnlyProduction     bool
	Verbose            bool
	Help               bool

	Out io.Writer
}

// FactoryCommand imports, syncs and reports on the local dataset
type FactoryCommand struct {
	config Config
	logger logrus.FieldLogger
}

// NewFactoryCommand creates a new factory command with the given configuration
func NewFactoryCommand(cfg Config, logger logrus.FieldLogger) *FactoryCommand {
	if cfg.Settings == nil {
		cfg.Settings = config.Default()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FactoryCommand{config: cfg, logger: logger}
}

// Execute runs the factory command
func (c *FactoryCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	asOf, from, err := c.validateInputs()
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader(asOf)
	}

	store, err := sqlite.Open(c.config.Settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer store.Close()

	master := masterdata.Default()
	mapper, err := domain.NewMaterialMapper(master, c.config.Settings.StrictMaterials, c.logger)
	if err != nil {
		return fmt.Errorf("invalid material rules: %w", err)
	}
	converter := domain.NewUnitConverter(master)

	eventStore := events.NewInMemoryEventStore(c.logger)
	// Automatic pushes run in the background; let them finish before exit.
	defer eventStore.Wait()

	remote := transport.New(c.config.Settings.SyncURL, c.config.Settings.SyncTimeout)
	var syncTransport services.Transport
	if remote != nil {
		syncTransport = remote
	}
	syncer := services.NewSyncService(store, syncTransport, eventStore, c.logger)
	if syncer.Enabled() && c.config.Sync == "" {
		eventStore.Subscribe(events.MutationEvents, events.NewAutoSyncHandler(syncer, c.config.Settings.SyncTimeout))
	}
	ledger := services.NewLedgerService(store, eventStore, converter, c.logger)

	if c.config.Sync == "pull" {
		if err := c.pull(ctx, syncer); err != nil {
			return err
		}
	}

	if err := c.importFiles(ctx, ledger, csv.NewLoader(converter)); err != nil {
		return err
	}

	if c.config.Sync == "push" {
		if err := syncer.Push(ctx); err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Fprintln(c.config.Out, "☁️  Pushed local dataset")
		}
	}

	if c.config.Report == "" {
		return nil
	}
	return c.report(ctx, store, master, mapper, asOf, from)
}

func (c *FactoryCommand) pull(ctx context.Context, syncer *services.SyncService) error {
	data, err := syncer.Pull(ctx)
	if err != nil {
		return err
	}
	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "☁️  Pulled %d records, %d orders, %d customers\n",
			len(data.Records), len(data.Orders), len(data.Customers))
	}
	return nil
}

func (c *FactoryCommand) importFiles(ctx context.Context, ledger *services.LedgerService, loader *csv.Loader) error {
	incoming := &entities.Dataset{}
	var err error

	if c.config.ImportRecords != "" {
		if incoming.Records, err = loader.LoadRecords(c.config.ImportRecords); err != nil {
			return fmt.Errorf("error loading records: %w", err)
		}
	}
	if c.config.ImportTransactions != "" {
		if incoming.Transactions, err = loader.LoadTransactions(c.config.ImportTransactions); err != nil {
			return fmt.Errorf("error loading transactions: %w", err)
		}
	}
	if c.config.ImportOrders != "" {
		if incoming.Orders, err = loader.LoadOrders(c.config.ImportOrders); err != nil {
			return fmt.Errorf("error loading orders: %w", err)
		}
	}
	if len(incoming.Records)+len(incoming.Transactions)+len(incoming.Orders) == 0 {
		return nil
	}

	if _, err := ledger.Import(ctx, incoming); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if c.config.Verbose {
		fmt.Fprintf(c.config.Out, "✅ Imported %d records, %d transactions, %d orders\n",
			len(incoming.Records), len(incoming.Transactions), len(incoming.Orders))
	}
	return nil
}

func (c *FactoryCommand) report(
	ctx context.Context,
	store repositories.Store,
	master *masterdata.Master,
	mapper *domain.MaterialMapper,
	asOf, from entities.Date,
) error {
	dashboard := services.NewDashboardService(master, mapper, fifo.Options{ExcludeNonProduction: c.config.OnlyProduction}, c.logger)

	start := time.Now()
	result, err := dashboard.Build(ctx, store, asOf, from)
	if err != nil {
		return fmt.Errorf("error computing dashboard: %w", err)
	}

	err = output.Generate(result, output.Config{
		Report:      c.config.Report,
		Format:      c.config.Format,
		OutputDir:   c.config.OutputDir,
		Verbose:     c.config.Verbose,
		ComputeTime: time.Since(start),
		Out:         c.config.Out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

// validateInputs validates the command configuration and resolves dates
func (c *FactoryCommand) validateInputs() (entities.Date, entities.Date, error) {
	if c.config.Report != "" && !slices.Contains(output.Reports, c.config.Report) {
		return "", "", fmt.Errorf("unknown report %q (expected one of %v)", c.config.Report, output.Reports)
	}
	switch c.config.Sync {
	case "", "push", "pull":
	default:
		return "", "", fmt.Errorf("invalid sync action %q (expected push or pull)", c.config.Sync)
	}
	if c.config.Sync != "" && c.config.Settings.SyncURL == "" {
		return "", "", fmt.Errorf("sync requested but FACTORYOPS_SYNC_URL is not set")
	}
	switch c.config.Format {
	case "", "text", "json":
	default:
		return "", "", fmt.Errorf("unsupported output format: %s", c.config.Format)
	}
	if c.config.Report == "" && c.config.Sync == "" &&
		c.config.ImportRecords == "" && c.config.ImportTransactions == "" && c.config.ImportOrders == "" {
		return "", "", fmt.Errorf("nothing to do: specify -report, -sync or an -import file")
	}

	asOf := entities.Today()
	if c.config.Date != "" {
		d, err := entities.ParseDate(c.config.Date)
		if err != nil {
			return "", "", err
		}
		asOf = d
	}
	var from entities.Date
	if c.config.From != "" {
		d, err := entities.ParseDate(c.config.From)
		if err != nil {
			return "", "", err
		}
		if d.After(asOf) {
			return "", "", fmt.Errorf("-from %s is after -date %s", d, asOf)
		}
		from = d
	}
	return asOf, from, nil
}

// printHeader prints the command header information
func (c *FactoryCommand) printHeader(asOf entities.Date) {
	w := c.config.Out
	fmt.Fprintf(w, "🚀 Factory Dashboard CLI\n")
	fmt.Fprintf(w, "Local store: %s\n", c.config.Settings.DBPath)
	if c.config.Settings.SyncURL != "" {
		fmt.Fprintf(w, "Remote: %s\n", c.config.Settings.SyncURL)
	}
	if c.config.Report != "" {
		fmt.Fprintf(w, "Report: %s as of %s (%s)\n", c.config.Report, asOf, c.config.Format)
	}
	fmt.Fprintln(w)
}

// showHelp displays the help message
func (c *FactoryCommand) showHelp() {
	fmt.Fprintf(c.config.Out, `Factory Dashboard CLI - production ledger, stock and dispatch guidance

USAGE:
    factorydash -report <name> [-date YYYY-MM-DD]    # Print a report
    factorydash -import-records <file> ...           # Import CSV files
    factorydash -sync push|pull                      # Mirror the remote copy
    factorydash -generate <dir>                      # Write demo CSV files

OPTIONS:
    -report <name>              all, fg, packing, raw, fifo, orders, planning, daily
    -date <date>                Report date (default: today)
    -from <date>                First day of the daily summary (default: -date)
    -import-records <file>      Production ledger CSV
    -import-transactions <file> Stock transactions CSV
    -import-orders <file>       Sales orders CSV
    -sync <push|pull>           Push local data or replace it with the remote copy
    -only-production            FIFO queues ignore return and dispatch lines
    -format <fmt>               Output format: text, json (default: text)
    -output <dir>               Write JSON reports to this directory
    -verbose                    Enable verbose output
    -help                       Show this help message

ENVIRONMENT (also read from .env):
    FACTORYOPS_DB_PATH            SQLite file (default: factoryops.db)
    FACTORYOPS_SYNC_URL           http(s) endpoint or file:// path of the remote copy
    FACTORYOPS_SYNC_TIMEOUT       Remote request timeout (default: 30s)
    FACTORYOPS_STRICT_MATERIALS   Fail on products with no packing rule
    FACTORYOPS_LOG_LEVEL          debug, info, warn, error (default: info)
    FACTORYOPS_LOG_FORMAT         text or json (default: text)

CSV FILE FORMATS:

records.csv:
    date,product_name,batch_no,size,weight_kg,rejected_kg,duples_pkt,carton_ctn,kind,notes
    2025-12-02,SPARKWELD 6013,B-1202,2.6 x 350,400,6.5,80,20,production,

transactions.csv:
    date,item_id,type,qty,notes
    2025-12-02,PM-PKT-6013,INWARD,500,supplier delivery

orders.csv:
    order_id,order_date,customer_name,status,product_name,size,quantity_ctn,weight_kg,price_per_kg
    SO-0001,2025-12-05,Acme Fabricators,Pending,SPARKWELD 7018,3.2 x 350,30,,120

EXAMPLES:
    # Stock on a given day
    factorydash -report fg -date 2025-12-05

    # Import a week of entries, then show the dashboard
    factorydash -import-records week.csv -import-orders orders.csv -report all

    # Daily summary as JSON
    factorydash -report daily -from 2025-12-01 -date 2025-12-07 -format json
`)
}
