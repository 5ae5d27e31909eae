package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/application/dto"
	"github.com/vsinha/factoryops/pkg/application/services/fifo"
	"github.com/vsinha/factoryops/pkg/application/services/fulfillment"
	"github.com/vsinha/factoryops/pkg/application/services/ledger"
	"github.com/vsinha/factoryops/pkg/application/services/planning"
	"github.com/vsinha/factoryops/pkg/application/services/projection"
	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
	"github.com/vsinha/factoryops/pkg/domain/repositories"
	domain "github.com/vsinha/factoryops/pkg/domain/services"
)

// DashboardService recomputes every report from a full dataset snapshot.
// Nothing is cached between calls.
type DashboardService struct {
	master    *masterdata.Master
	converter *domain.UnitConverter
	resolver  projection.MaterialResolver
	sequencer *fifo.Sequencer
	checker   *fulfillment.Checker
	planner   *planning.Planner
	logger    logrus.FieldLogger
}

// NewDashboardService wires the projection pipeline over one master data set
func NewDashboardService(
	master *masterdata.Master,
	resolver projection.MaterialResolver,
	fifoOpts fifo.Options,
	logger logrus.FieldLogger,
) *DashboardService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	converter := domain.NewUnitConverter(master)
	return &DashboardService{
		master:    master,
		converter: converter,
		resolver:  resolver,
		sequencer: fifo.NewSequencer(fifoOpts),
		checker:   fulfillment.NewChecker(),
		planner:   planning.NewPlanner(converter),
		logger:    logger,
	}
}

// FinishedGoods projects finished-goods balances on asOf
func (s *DashboardService) FinishedGoods(data *entities.Dataset, asOf entities.Date) []dto.FinishedGoodsRow {
	balances := s.finishedGoodsBalances(data, asOf)

	rows := make([]dto.FinishedGoodsRow, 0, len(balances))
	for _, b := range balances {
		row := dto.FinishedGoodsRow{
			BalanceRow:     b,
			ClosingPallets: domain.Pallets(b.Closing),
		}
		if ctn, ok := s.converter.KgToCartons(b.Item.Product, b.Item.Size, b.Closing); ok {
			row.ClosingCtn = ctn
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *DashboardService) finishedGoodsBalances(data *entities.Dataset, asOf entities.Date) []entities.BalanceRow {
	movements := projection.FinishedGoodsMovements(data.RecordValues(), data.OrderValues())
	return projection.NewProjector(s.master.FinishedGoodsBaseline).Project(s.master.FinishedGoods, movements, asOf)
}

// PackingMaterials projects packing-material balances on asOf
func (s *DashboardService) PackingMaterials(data *entities.Dataset, asOf entities.Date) ([]entities.BalanceRow, error) {
	movements, err := projection.PackingMovements(data.RecordValues(), data.TransactionValues(), s.resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to derive packing movements: %w", err)
	}
	return projection.NewProjector(s.master.PackingBaseline).Project(s.master.PackingItems(), movements, asOf), nil
}

// RawMaterials projects raw-material balances on asOf
func (s *DashboardService) RawMaterials(data *entities.Dataset, asOf entities.Date) []entities.BalanceRow {
	movements := projection.TransactionMovements(data.TransactionValues())
	return projection.NewProjector(s.master.RawMaterialBaseline).Project(s.master.RawItems(), movements, asOf)
}

// Inventory projects all three stock ledgers on asOf
func (s *DashboardService) Inventory(data *entities.Dataset, asOf entities.Date) (dto.InventoryReport, error) {
	packing, err := s.PackingMaterials(data, asOf)
	if err != nil {
		return dto.InventoryReport{}, err
	}
	return dto.InventoryReport{
		AsOf:             asOf,
		FinishedGoods:    s.FinishedGoods(data, asOf),
		PackingMaterials: packing,
		RawMaterials:     s.RawMaterials(data, asOf),
	}, nil
}

// Queues builds the FIFO dispatch queues from the whole ledger
func (s *DashboardService) Queues(data *entities.Dataset) []fifo.ProductQueue {
	return s.sequencer.BuildQueues(data.RecordValues())
}

// Orders classifies every open order against finished-goods closing
// balances on asOf and tags its items with FIFO batches. Dispatched and
// delivered orders have already left stock and are not checked.
func (s *DashboardService) Orders(data *entities.Dataset, asOf entities.Date) dto.OrderReport {
	snapshot := projection.Snapshot(s.finishedGoodsBalances(data, asOf))
	queues := s.Queues(data)

	report := dto.OrderReport{
		AsOf:    asOf,
		Orders:  []entities.SalesOrder{},
		Results: []fulfillment.Result{},
	}
	for _, o := range data.Orders {
		if !o.Status.IsOpen() {
			continue
		}
		order := *o
		order.Items = append([]entities.SalesOrderItem(nil), o.Items...)
		fifo.AssignBatches(&order, queues)

		result := s.checker.Classify(&order, snapshot)
		switch result.Status {
		case fulfillment.Ready:
			report.Ready++
		case fulfillment.Partial:
			report.Partial++
		default:
			report.Out++
		}
		report.Orders = append(report.Orders, order)
		report.Results = append(report.Results, result)
	}
	return report
}

// Plan lists what must be produced to cover open orders from stock on asOf
func (s *DashboardService) Plan(data *entities.Dataset, asOf entities.Date) []planning.Requirement {
	snapshot := projection.Snapshot(s.finishedGoodsBalances(data, asOf))
	return s.planner.Plan(data.Orders, snapshot)
}

// Daily summarizes the production ledger for every day in [from, to]
func (s *DashboardService) Daily(data *entities.Dataset, from, to entities.Date) dto.DailyReport {
	days := ledger.Summarize(data.RecordValues(), from, to)
	return dto.DailyReport{
		From:  from,
		To:    to,
		Days:  days,
		Total: ledger.Total(days),
	}
}

// Build computes the complete dashboard for asOf from one store snapshot.
// The daily summary covers [from, asOf]; a zero from means asOf only.
func (s *DashboardService) Build(ctx context.Context, store repositories.Store, asOf, from entities.Date) (*dto.Dashboard, error) {
	data, err := store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local dataset: %w", err)
	}
	if from.IsZero() {
		from = asOf
	}

	start := time.Now()
	inventory, err := s.Inventory(data, asOf)
	if err != nil {
		return nil, err
	}
	dashboard := &dto.Dashboard{
		Inventory:  inventory,
		Queues:     s.Queues(data),
		Orders:     s.Orders(data, asOf),
		Plan:       s.Plan(data, asOf),
		Daily:      s.Daily(data, from, asOf),
		ComputedAt: start,
	}

	s.logger.WithFields(logrus.Fields{
		"asOf":     asOf,
		"records":  len(data.Records),
		"orders":   len(data.Orders),
		"duration": time.Since(start),
	}).Debug("dashboard computed")
	return dashboard, nil
}
