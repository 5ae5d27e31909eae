package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
)

// KgPerPallet approximates one pallet layer for truck-loading estimates
var KgPerPallet = decimal.NewFromInt(1000)

// UnitConverter converts between weight, packets, cartons and pallets using
// the product catalog
type UnitConverter struct {
	master *masterdata.Master
}

// NewUnitConverter creates a converter over the given master data
func NewUnitConverter(master *masterdata.Master) *UnitConverter {
	return &UnitConverter{master: master}
}

func (c *UnitConverter) definition(product, size string) (*entities.ProductDefinition, bool) {
	def, ok := c.master.Product(product)
	if !ok || !def.HasSize(size) {
		return nil, false
	}
	return def, true
}

// CartonWeight returns the kg in one carton of product and size
func (c *UnitConverter) CartonWeight(product, size string) (decimal.Decimal, bool) {
	def, ok := c.definition(product, size)
	if !ok {
		return decimal.Zero, false
	}
	return def.CtnWeight(size)
}

// PacketWeight returns the kg in one packet of product and size
func (c *UnitConverter) PacketWeight(product, size string) (decimal.Decimal, bool) {
	def, ok := c.definition(product, size)
	if !ok {
		return decimal.Zero, false
	}
	return def.PktWeight(size)
}

// CartonsToKg converts a carton count to weight
func (c *UnitConverter) CartonsToKg(product, size string, cartons int64) (decimal.Decimal, bool) {
	ctn, ok := c.CartonWeight(product, size)
	if !ok {
		return decimal.Zero, false
	}
	return ctn.Mul(decimal.NewFromInt(cartons)), true
}

// KgToCartons converts weight to a (possibly fractional) carton count
func (c *UnitConverter) KgToCartons(product, size string, kg decimal.Decimal) (decimal.Decimal, bool) {
	ctn, ok := c.CartonWeight(product, size)
	if !ok {
		return decimal.Zero, false
	}
	return kg.Div(ctn), true
}

// KgToPackets converts weight to a (possibly fractional) packet count
func (c *UnitConverter) KgToPackets(product, size string, kg decimal.Decimal) (decimal.Decimal, bool) {
	pkt, ok := c.PacketWeight(product, size)
	if !ok {
		return decimal.Zero, false
	}
	return kg.Div(pkt), true
}

// Pallets approximates the pallet count for a weight
func Pallets(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(KgPerPallet)
}

// NewOrderItem builds a sales order line whose weight is derived from the
// carton count
func (c *UnitConverter) NewOrderItem(product, size string, cartons int64, pricePerKg decimal.Decimal) (entities.SalesOrderItem, error) {
	if cartons < 0 {
		return entities.SalesOrderItem{}, fmt.Errorf("carton quantity cannot be negative, got %d", cartons)
	}
	weight, ok := c.CartonsToKg(product, size, cartons)
	if !ok {
		return entities.SalesOrderItem{}, fmt.Errorf("unknown product %s size %s", product, size)
	}
	return entities.SalesOrderItem{
		ProductName:        product,
		Size:               size,
		QuantityCtn:        cartons,
		CalculatedWeightKg: weight,
		PricePerKg:         pricePerKg,
		ItemValue:          weight.Mul(pricePerKg),
	}, nil
}
