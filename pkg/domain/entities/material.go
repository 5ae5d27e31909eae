package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaterialCategory groups master materials
type MaterialCategory int

const (
	Packet MaterialCategory = iota
	Carton
	ContainerJar
	Foil
	RawMaterial
)

// String method for MaterialCategory enum
func (c MaterialCategory) String() string {
	switch c {
	case Packet:
		return "Packet"
	case Carton:
		return "Carton"
	case ContainerJar:
		return "Container"
	case Foil:
		return "Foil"
	case RawMaterial:
		return "RawMaterial"
	default:
		return "Unknown"
	}
}

// Material is a packing or raw material master entry with its opening stock
type Material struct {
	ID       string
	Name     string
	Category MaterialCategory
	Unit     string
	Opening  decimal.Decimal
}

// FamilyKey identifies a material rule: a product family on a packaging line
type FamilyKey struct {
	Family string
	Type   ProductType
}

func (k FamilyKey) String() string {
	return fmt.Sprintf("%s/%s", k.Family, k.Type)
}

// WeightBand selects a packet by approximate per-packet weight. Max zero
// means unbounded.
type WeightBand struct {
	Min          decimal.Decimal
	Max          decimal.Decimal
	MinExclusive bool
	PacketID     string
}

// Contains reports whether w falls inside the band
func (b WeightBand) Contains(w decimal.Decimal) bool {
	if b.MinExclusive {
		if !w.GreaterThan(b.Min) {
			return false
		}
	} else if w.LessThan(b.Min) {
		return false
	}
	if !b.Max.IsZero() && w.GreaterThan(b.Max) {
		return false
	}
	return true
}

// SizeOverride fixes packet and carton for sizes containing a marker
type SizeOverride struct {
	SizeContains string
	PacketID     string
	CartonID     string
}

// MaterialRule says which packing materials a family consumes. Resolution
// order: size override, fixed packet, weight bands, default packet.
type MaterialRule struct {
	Key             FamilyKey
	PacketID        string
	CartonID        string
	SizeOverrides   []SizeOverride
	PacketBands     []WeightBand
	DefaultPacketID string
}

// MaterialIDs lists every material the rule can resolve to
func (r MaterialRule) MaterialIDs() []string {
	var ids []string
	add := func(id string) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	add(r.PacketID)
	add(r.CartonID)
	add(r.DefaultPacketID)
	for _, o := range r.SizeOverrides {
		add(o.PacketID)
		add(o.CartonID)
	}
	for _, b := range r.PacketBands {
		add(b.PacketID)
	}
	return ids
}

// MaterialResolution is the set of packing materials one ledger line consumes
type MaterialResolution struct {
	PacketID string
	CartonID string
	FoilID   string
}

// IsEmpty reports whether nothing is consumed
func (m MaterialResolution) IsEmpty() bool {
	return m.PacketID == "" && m.CartonID == "" && m.FoilID == ""
}
