package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
)

// GenerateConfig holds configuration for demo data generation
type GenerateConfig struct {
	Days      int           // Number of working days to generate
	Start     entities.Date // First day; defaults to the day after the baseline
	Orders    int           // Sales orders to generate
	OutputDir string        // Output directory for generated files
	Seed      int64         // Random seed for reproducible generation
	Help      bool          // Show help
	Verbose   bool          // Verbose output
}

// GenerateCommand writes CSV files in the import format filled with
// plausible factory activity
type GenerateCommand struct {
	config GenerateConfig
	master *masterdata.Master
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	master := masterdata.Default()
	if config.Start.IsZero() {
		config.Start = master.FinishedGoodsBaseline.Next()
	}
	if config.Days <= 0 {
		config.Days = 7
	}

	return &GenerateCommand{
		config: config,
		master: master,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if _, err := entities.ParseDate(string(cmd.config.Start)); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("🔧 Generating %d days from %s with %d orders\n",
			cmd.config.Days, cmd.config.Start, cmd.config.Orders)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	if err := os.MkdirAll(cmd.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	steps := []struct {
		file string
		rows func() [][]string
	}{
		{"records.csv", cmd.generateRecords},
		{"transactions.csv", cmd.generateTransactions},
		{"orders.csv", cmd.generateOrders},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cmd.config.Verbose {
			fmt.Printf("📦 Generating %s...\n", step.file)
		}
		if err := writeCSV(filepath.Join(cmd.config.OutputDir, step.file), step.rows()); err != nil {
			return fmt.Errorf("failed to write %s: %w", step.file, err)
		}
	}

	if cmd.config.Verbose {
		fmt.Println("✅ Demo data generated")
	}
	return nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func (cmd *GenerateCommand) pick() (*entities.ProductDefinition, string) {
	product := cmd.master.Catalog[cmd.rand.Intn(len(cmd.master.Catalog))]
	return product, product.Sizes[cmd.rand.Intn(len(product.Sizes))]
}

// generateRecords writes two to four production lines per day and an
// occasional return
func (cmd *GenerateCommand) generateRecords() [][]string {
	rows := [][]string{{"date", "product_name", "batch_no", "size", "weight_kg", "rejected_kg", "duples_pkt", "carton_ctn", "kind", "notes"}}

	day := cmd.config.Start
	for d := 0; d < cmd.config.Days; d++ {
		lines := 2 + cmd.rand.Intn(3)
		for n := 1; n <= lines; n++ {
			product, size := cmd.pick()
			ctnWeight, _ := product.CtnWeight(size)
			perCarton, _ := product.PacketsPerCarton(size)

			cartons := int64(5 + cmd.rand.Intn(26))
			weight := ctnWeight.Mul(decimal.NewFromInt(cartons))
			rejected := weight.Mul(decimal.NewFromInt(int64(cmd.rand.Intn(30)))).Div(decimal.NewFromInt(1000))
			batch := fmt.Sprintf("B-%s-%d", day.Time().Format("0102"), n)

			rows = append(rows, []string{
				string(day), product.DisplayName, batch, size,
				weight.String(), rejected.StringFixed(2),
				fmt.Sprint(cartons * perCarton), fmt.Sprint(cartons),
				"production", "",
			})
		}
		if cmd.rand.Intn(5) == 0 {
			product, size := cmd.pick()
			rows = append(rows, []string{
				string(day), product.DisplayName, "", size,
				fmt.Sprint(10 + cmd.rand.Intn(40)), "0", "0", "0",
				"return", "customer return",
			})
		}
		day = day.Next()
	}
	return rows
}

// generateTransactions writes a weekly packing material receipt and daily
// raw material issues
func (cmd *GenerateCommand) generateTransactions() [][]string {
	rows := [][]string{{"date", "item_id", "type", "qty", "notes"}}

	day := cmd.config.Start
	for d := 0; d < cmd.config.Days; d++ {
		if d%7 == 0 {
			for _, mat := range cmd.master.PackingMaterials {
				rows = append(rows, []string{string(day), mat.ID, string(entities.Inward), fmt.Sprint(200 * (1 + cmd.rand.Intn(5))), "weekly receipt"})
			}
		}
		for _, mat := range cmd.master.RawMaterials {
			rows = append(rows, []string{string(day), mat.ID, string(entities.Issue), fmt.Sprint(10 * (1 + cmd.rand.Intn(20))), "shift issue"})
		}
		day = day.Next()
	}
	return rows
}

// generateOrders writes orders with one to three lines. Weights are left
// blank for the importer to derive from cartons.
func (cmd *GenerateCommand) generateOrders() [][]string {
	rows := [][]string{{"order_id", "order_date", "customer_name", "status", "product_name", "size", "quantity_ctn", "weight_kg", "price_per_kg"}}
	customers := []string{"Acme Fabricators", "Deccan Steel Works", "Shree Engineering", "Konkan Boilers"}
	statuses := []entities.OrderStatus{entities.OrderPending, entities.OrderProcessing, entities.OrderDispatched}

	for i := 1; i <= cmd.config.Orders; i++ {
		date := cmd.config.Start.AddDays(cmd.rand.Intn(cmd.config.Days))
		id := fmt.Sprintf("SO-%04d", i)
		customer := customers[cmd.rand.Intn(len(customers))]
		status := statuses[cmd.rand.Intn(len(statuses))]

		lines := 1 + cmd.rand.Intn(3)
		for n := 0; n < lines; n++ {
			product, size := cmd.pick()
			rows = append(rows, []string{
				id, string(date), customer, string(status),
				product.DisplayName, size, fmt.Sprint(5 + cmd.rand.Intn(46)), "",
				fmt.Sprint(90 + cmd.rand.Intn(60)),
			})
		}
	}
	return rows
}

func (cmd *GenerateCommand) printHelp() {
	fmt.Printf(`Demo Data Generator - CSV files in the factorydash import format

USAGE:
    factorydash -generate <dir> [options]

OPTIONS:
    -generate <dir>   Output directory for records.csv, transactions.csv, orders.csv
    -days <n>         Working days to generate (default: 7)
    -from <date>      First day (default: day after the opening stock count)
    -orders <n>       Sales orders to generate (default: 5)
    -seed <n>         Random seed for reproducible output
    -verbose          Enable verbose output
`)
}
