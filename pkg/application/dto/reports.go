package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/application/services/fifo"
	"github.com/vsinha/factoryops/pkg/application/services/fulfillment"
	"github.com/vsinha/factoryops/pkg/application/services/ledger"
	"github.com/vsinha/factoryops/pkg/application/services/planning"
	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// FinishedGoodsRow is a finished-goods balance with carton and pallet
// equivalents of the closing weight
type FinishedGoodsRow struct {
	entities.BalanceRow
	ClosingCtn     decimal.Decimal `json:"closingCtn"`
	ClosingPallets decimal.Decimal `json:"closingPallets"`
}

// InventoryReport contains the balances of every stock ledger on one date
type InventoryReport struct {
	AsOf             entities.Date         `json:"asOf"`
	FinishedGoods    []FinishedGoodsRow    `json:"finishedGoods"`
	PackingMaterials []entities.BalanceRow `json:"packingMaterials"`
	RawMaterials     []entities.BalanceRow `json:"rawMaterials"`
}

// OrderReport is the fulfillment status of every open order against one
// date's finished-goods balances. Orders carry their FIFO batch guidance.
type OrderReport struct {
	AsOf    entities.Date         `json:"asOf"`
	Orders  []entities.SalesOrder `json:"orders"`
	Results []fulfillment.Result  `json:"results"`
	Ready   int                   `json:"ready"`
	Partial int                   `json:"partial"`
	Out     int                   `json:"outOfStock"`
}

// DailyReport summarizes the production ledger over a date range
type DailyReport struct {
	From  entities.Date       `json:"from"`
	To    entities.Date       `json:"to"`
	Days  []ledger.DaySummary `json:"days"`
	Total ledger.DaySummary   `json:"total"`
}

// Dashboard is the complete output of one dashboard computation
type Dashboard struct {
	Inventory  InventoryReport        `json:"inventory"`
	Queues     []fifo.ProductQueue    `json:"queues"`
	Orders     OrderReport            `json:"orders"`
	Plan       []planning.Requirement `json:"plan"`
	Daily      DailyReport            `json:"daily"`
	ComputedAt time.Time              `json:"computedAt"`
}
