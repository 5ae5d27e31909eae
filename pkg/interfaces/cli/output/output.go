package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/application/dto"
	"github.com/vsinha/factoryops/pkg/application/services/fifo"
	"github.com/vsinha/factoryops/pkg/application/services/ledger"
	"github.com/vsinha/factoryops/pkg/application/services/planning"
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Report names accepted by Generate
const (
	ReportAll      = "all"
	ReportFG       = "fg"
	ReportPacking  = "packing"
	ReportRaw      = "raw"
	ReportFIFO     = "fifo"
	ReportOrders   = "orders"
	ReportPlanning = "planning"
	ReportDaily    = "daily"
)

// Reports lists every report name
var Reports = []string{ReportAll, ReportFG, ReportPacking, ReportRaw, ReportFIFO, ReportOrders, ReportPlanning, ReportDaily}

// Config holds configuration for output generation
type Config struct {
	Report      string
	Format      string
	OutputDir   string
	Verbose     bool
	ComputeTime time.Duration
	Out         io.Writer
}

// Generate writes the selected report in the requested format
func Generate(dashboard *dto.Dashboard, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Report == "" {
		config.Report = ReportAll
	}

	switch config.Format {
	case "text", "":
		return generateTextOutput(dashboard, config)
	case "json":
		return generateJSONOutput(dashboard, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func section(dashboard *dto.Dashboard, report string) (any, error) {
	switch report {
	case ReportAll:
		return dashboard, nil
	case ReportFG:
		return dashboard.Inventory.FinishedGoods, nil
	case ReportPacking:
		return dashboard.Inventory.PackingMaterials, nil
	case ReportRaw:
		return dashboard.Inventory.RawMaterials, nil
	case ReportFIFO:
		return dashboard.Queues, nil
	case ReportOrders:
		return dashboard.Orders, nil
	case ReportPlanning:
		return dashboard.Plan, nil
	case ReportDaily:
		return dashboard.Daily, nil
	default:
		return nil, fmt.Errorf("unknown report: %s", report)
	}
}

// generateTextOutput creates human-readable tables
func generateTextOutput(dashboard *dto.Dashboard, config Config) error {
	w := config.Out
	all := config.Report == ReportAll
	if _, err := section(dashboard, config.Report); err != nil {
		return err
	}

	fmt.Fprintf(w, "📊 Factory Dashboard as of %s\n", dashboard.Inventory.AsOf)
	fmt.Fprintf(w, "==================================\n\n")
	if config.Verbose {
		fmt.Fprintf(w, "Compute Time: %v\n\n", config.ComputeTime)
	}

	if all || config.Report == ReportFG {
		writeFinishedGoods(w, dashboard.Inventory.FinishedGoods)
	}
	if all || config.Report == ReportPacking {
		writeMaterials(w, "📦 Packing Materials", dashboard.Inventory.PackingMaterials)
	}
	if all || config.Report == ReportRaw {
		writeMaterials(w, "🧱 Raw Materials", dashboard.Inventory.RawMaterials)
	}
	if all || config.Report == ReportFIFO {
		writeQueues(w, dashboard.Queues)
	}
	if all || config.Report == ReportOrders {
		writeOrders(w, dashboard.Orders)
	}
	if all || config.Report == ReportPlanning {
		writePlan(w, dashboard.Plan)
	}
	if all || config.Report == ReportDaily {
		writeDaily(w, dashboard.Daily)
	}
	return nil
}

func kg(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func writeFinishedGoods(w io.Writer, rows []dto.FinishedGoodsRow) {
	fmt.Fprintf(w, "🏭 Finished Goods (kg):\n")
	fmt.Fprintf(w, "%-24s %-12s %12s %10s %10s %12s %10s %8s\n",
		"Product", "Size", "Opening", "In", "Out", "Closing", "Cartons", "Pallets")
	fmt.Fprintf(w, "%-24s %-12s %12s %10s %10s %12s %10s %8s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 10),
		strings.Repeat("-", 10), strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 8))

	for _, row := range rows {
		fmt.Fprintf(w, "%-24s %-12s %12s %10s %10s %12s %10s %8s\n",
			row.Item.Product,
			row.Item.Size,
			kg(row.Opening),
			kg(row.Inflow),
			kg(row.Outflow),
			kg(row.Closing),
			row.ClosingCtn.StringFixed(1),
			row.ClosingPallets.StringFixed(2))
	}
	fmt.Fprintln(w)
}

func writeMaterials(w io.Writer, title string, rows []entities.BalanceRow) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, "%-16s %-32s %-5s %12s %10s %10s %12s\n",
		"Item", "Name", "Unit", "Opening", "In", "Out", "Closing")
	fmt.Fprintf(w, "%-16s %-32s %-5s %12s %10s %10s %12s\n",
		strings.Repeat("-", 16), strings.Repeat("-", 32), strings.Repeat("-", 5), strings.Repeat("-", 12),
		strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 12))

	for _, row := range rows {
		flag := ""
		if row.Closing.IsNegative() {
			flag = " ⚠️"
		}
		fmt.Fprintf(w, "%-16s %-32s %-5s %12s %10s %10s %12s%s\n",
			row.Item.ItemID,
			row.Item.Name,
			row.Item.Unit,
			row.Opening.String(),
			row.Inflow.String(),
			row.Outflow.String(),
			row.Closing.String(),
			flag)
	}
	fmt.Fprintln(w)
}

func writeQueues(w io.Writer, queues []fifo.ProductQueue) {
	fmt.Fprintf(w, "🚚 FIFO Dispatch Queues:\n")
	if len(queues) == 0 {
		fmt.Fprintf(w, "  (no stock in any batch)\n\n")
		return
	}
	for _, q := range queues {
		fmt.Fprintf(w, "%s %s: %s kg, %d ctn, %s pallets\n",
			q.ProductName, q.Size, kg(q.TotalKg), q.TotalCtn, q.Pallets.StringFixed(2))
		if head, ok := q.Head(); ok {
			fmt.Fprintf(w, "  ▶ dispatch first: %-12s %s %10s kg %6d ctn\n",
				batchLabel(head.BatchNo), head.Date, kg(head.WeightKg), head.Cartons)
		}
		for _, b := range q.Waiting() {
			fmt.Fprintf(w, "    waiting:        %-12s %s %10s kg %6d ctn\n",
				batchLabel(b.BatchNo), b.Date, kg(b.WeightKg), b.Cartons)
		}
	}
	fmt.Fprintln(w)
}

func batchLabel(batchNo string) string {
	if strings.TrimSpace(batchNo) == "" {
		return "(none)"
	}
	return batchNo
}

func writeOrders(w io.Writer, report dto.OrderReport) {
	fmt.Fprintf(w, "📋 Open Orders: %d ready, %d partial, %d out of stock\n",
		report.Ready, report.Partial, report.Out)
	fmt.Fprintf(w, "%-38s %-12s %-24s %12s %-14s\n",
		"Order", "Date", "Customer", "Weight", "Status")
	fmt.Fprintf(w, "%-38s %-12s %-24s %12s %-14s\n",
		strings.Repeat("-", 38), strings.Repeat("-", 12), strings.Repeat("-", 24), strings.Repeat("-", 12), strings.Repeat("-", 14))

	for i, order := range report.Orders {
		result := report.Results[i]
		fmt.Fprintf(w, "%-38s %-12s %-24s %12s %-14s\n",
			order.ID, order.OrderDate, order.CustomerName, kg(order.TotalWeightKg), result.Status)
		for _, item := range order.Items {
			if item.AssignedBatch != "" {
				fmt.Fprintf(w, "    %s %s: batches %s\n", item.ProductName, item.Size, item.AssignedBatch)
			}
		}
		for _, missing := range result.MissingItems {
			fmt.Fprintf(w, "    ⚠️  %s %s short %s kg (need %s, have %s)\n",
				missing.ProductName, missing.Size, kg(missing.ShortfallKg), kg(missing.RequiredKg), kg(missing.AvailableKg))
		}
	}
	fmt.Fprintln(w)
}

func writePlan(w io.Writer, plan []planning.Requirement) {
	fmt.Fprintf(w, "🛠  Production Plan:\n")
	if len(plan) == 0 {
		fmt.Fprintf(w, "  Stock covers every open order\n\n")
		return
	}
	fmt.Fprintf(w, "%-24s %-12s %12s %12s %12s %8s\n",
		"Product", "Size", "Demand", "Available", "To Produce", "Cartons")
	fmt.Fprintf(w, "%-24s %-12s %12s %12s %12s %8s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 8))
	for _, req := range plan {
		fmt.Fprintf(w, "%-24s %-12s %12s %12s %12s %8d\n",
			req.ProductName, req.Size, kg(req.DemandKg), kg(req.AvailableKg), kg(req.ToProduceKg), req.ToProduceCtn)
	}
	fmt.Fprintln(w)
}

func writeDaily(w io.Writer, report dto.DailyReport) {
	fmt.Fprintf(w, "📅 Daily Production %s to %s:\n", report.From, report.To)
	fmt.Fprintf(w, "%-12s %8s %10s %10s %8s %8s %8s %10s %10s\n",
		"Date", "Lines", "Good", "Rejected", "Reject%", "Packets", "Cartons", "Returned", "Dispatched")
	fmt.Fprintf(w, "%-12s %8s %10s %10s %8s %8s %8s %10s %10s\n",
		strings.Repeat("-", 12), strings.Repeat("-", 8), strings.Repeat("-", 10), strings.Repeat("-", 10),
		strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 8), strings.Repeat("-", 10), strings.Repeat("-", 10))

	row := func(label string, d ledger.DaySummary) {
		fmt.Fprintf(w, "%-12s %8d %10s %10s %8s %8d %8d %10s %10s\n",
			label, d.Records, kg(d.GoodKg), kg(d.RejectedKg), d.RejectPct.StringFixed(2),
			d.Packets, d.Cartons, kg(d.ReturnedKg), kg(d.DispatchedKg))
	}
	for _, d := range report.Days {
		row(string(d.Date), d)
	}
	row("TOTAL", report.Total)
	fmt.Fprintln(w)
}

// generateJSONOutput writes the selected section as JSON, to a file when
// an output directory is configured
func generateJSONOutput(dashboard *dto.Dashboard, config Config) error {
	data, err := section(dashboard, config.Report)
	if err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Out, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, fmt.Sprintf("%s_%s.json", config.Report, dashboard.Inventory.AsOf))
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}
