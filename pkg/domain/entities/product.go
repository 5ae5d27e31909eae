package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductType is the packaging line a product family runs on
type ProductType int

const (
	Normal ProductType = iota
	Vacuum
	Container
)

// String method for ProductType enum
func (t ProductType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Vacuum:
		return "Vacuum"
	case Container:
		return "Container"
	default:
		return "Unknown"
	}
}

// ProductDefinition is an immutable catalog entry. Packet and carton
// weights are keyed by size as written in the catalog; lookups normalize.
type ProductDefinition struct {
	Family        string
	Type          ProductType
	DisplayName   string
	Sizes         []string
	PacketWeights map[string]decimal.Decimal
	CartonWeights map[string]decimal.Decimal
}

// NewProductDefinition creates a validated ProductDefinition. Every size
// must carry both a packet and a carton weight.
func NewProductDefinition(
	family string,
	productType ProductType,
	displayName string,
	sizes []string,
	packetWeights, cartonWeights map[string]decimal.Decimal,
) (*ProductDefinition, error) {
	if family == "" {
		return nil, fmt.Errorf("family cannot be empty")
	}
	if displayName == "" {
		return nil, fmt.Errorf("display name cannot be empty")
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("product %s must have at least one size", displayName)
	}

	def := &ProductDefinition{
		Family:        family,
		Type:          productType,
		DisplayName:   displayName,
		Sizes:         sizes,
		PacketWeights: make(map[string]decimal.Decimal, len(sizes)),
		CartonWeights: make(map[string]decimal.Decimal, len(sizes)),
	}
	for _, size := range sizes {
		pkt, ok := packetWeights[size]
		if !ok || !pkt.IsPositive() {
			return nil, fmt.Errorf("product %s size %s: packet weight must be positive", displayName, size)
		}
		ctn, ok := cartonWeights[size]
		if !ok || !ctn.IsPositive() {
			return nil, fmt.Errorf("product %s size %s: carton weight must be positive", displayName, size)
		}
		def.PacketWeights[NormalizeToken(size)] = pkt
		def.CartonWeights[NormalizeToken(size)] = ctn
	}
	return def, nil
}

// PktWeight returns the weight of one packet of the given size in kg
func (p *ProductDefinition) PktWeight(size string) (decimal.Decimal, bool) {
	w, ok := p.PacketWeights[NormalizeToken(size)]
	return w, ok
}

// CtnWeight returns the weight of one carton of the given size in kg
func (p *ProductDefinition) CtnWeight(size string) (decimal.Decimal, bool) {
	w, ok := p.CartonWeights[NormalizeToken(size)]
	return w, ok
}

// PacketsPerCarton is the carton weight divided by the packet weight
func (p *ProductDefinition) PacketsPerCarton(size string) (int64, bool) {
	pkt, ok := p.PktWeight(size)
	if !ok {
		return 0, false
	}
	ctn, _ := p.CtnWeight(size)
	return ctn.Div(pkt).Round(0).IntPart(), true
}

// HasSize reports whether the product is made in the given size
func (p *ProductDefinition) HasSize(size string) bool {
	_, ok := p.CartonWeights[NormalizeToken(size)]
	return ok
}
