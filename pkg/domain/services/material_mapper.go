package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
)

// ErrUnmappedProduct is returned in strict mode when a record's product has
// no packing material rule
var ErrUnmappedProduct = errors.New("product has no packing material rule")

// MaterialMapper decides which packing materials a production record
// consumes
type MaterialMapper struct {
	master *masterdata.Master
	strict bool
	logger logrus.FieldLogger
}

// NewMaterialMapper validates the rule table against the catalog and
// returns a mapper. In strict mode unmapped products are errors; otherwise
// they are logged and skipped.
func NewMaterialMapper(master *masterdata.Master, strict bool, logger logrus.FieldLogger) (*MaterialMapper, error) {
	if master == nil {
		return nil, fmt.Errorf("master data cannot be nil")
	}
	if err := master.Validate(); err != nil {
		return nil, fmt.Errorf("invalid material rules: %w", err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &MaterialMapper{master: master, strict: strict, logger: logger}, nil
}

// Resolve returns the packet, carton and foil ids consumed by a record
func (m *MaterialMapper) Resolve(record *entities.ProductionRecord) (entities.MaterialResolution, error) {
	key, ok := m.familyKey(record.ProductName)
	if !ok {
		return m.unmapped(record)
	}
	rule, ok := m.master.Rules[key]
	if !ok {
		return m.unmapped(record)
	}

	res := applyRule(rule, record)
	if foil, ok := m.master.FoilConsumers[res.PacketID]; ok {
		res.FoilID = foil
	}
	return res, nil
}

func (m *MaterialMapper) unmapped(record *entities.ProductionRecord) (entities.MaterialResolution, error) {
	if m.strict {
		return entities.MaterialResolution{}, fmt.Errorf("%w: %s", ErrUnmappedProduct, record.ProductName)
	}
	m.logger.WithFields(logrus.Fields{
		"record":  record.ID,
		"product": record.ProductName,
		"size":    record.Size,
	}).Warn("no packing material rule, consumption not tracked")
	return entities.MaterialResolution{}, nil
}

// familyKey prefers the catalog and falls back to name classification for
// products entered before they were catalogued
func (m *MaterialMapper) familyKey(productName string) (entities.FamilyKey, bool) {
	if def, ok := m.master.Product(productName); ok {
		return entities.FamilyKey{Family: def.Family, Type: def.Type}, true
	}
	return classifyByName(productName)
}

func classifyByName(productName string) (entities.FamilyKey, bool) {
	name := entities.FoldName(productName)
	switch {
	case strings.Contains(name, "NIFE"):
		return entities.FamilyKey{Family: "NIFE", Type: entities.Container}, true
	case strings.Contains(name, "NI"):
		return entities.FamilyKey{Family: "NI", Type: entities.Container}, true
	case strings.Contains(name, "VACUUM"):
		if strings.Contains(name, "7018") {
			return entities.FamilyKey{Family: "7018", Type: entities.Vacuum}, true
		}
		return entities.FamilyKey{Type: entities.Vacuum}, true
	case strings.Contains(name, "6013"):
		return entities.FamilyKey{Family: "6013", Type: entities.Normal}, true
	case strings.Contains(name, "7018"):
		return entities.FamilyKey{Family: "7018", Type: entities.Normal}, true
	default:
		return entities.FamilyKey{}, false
	}
}

func applyRule(rule entities.MaterialRule, record *entities.ProductionRecord) entities.MaterialResolution {
	size := entities.NormalizeToken(record.Size)
	for _, o := range rule.SizeOverrides {
		if strings.Contains(size, entities.NormalizeToken(o.SizeContains)) {
			carton := o.CartonID
			if carton == "" {
				carton = rule.CartonID
			}
			return entities.MaterialResolution{PacketID: o.PacketID, CartonID: carton}
		}
	}

	res := entities.MaterialResolution{PacketID: rule.PacketID, CartonID: rule.CartonID}
	if res.PacketID != "" {
		return res
	}
	perPacket := record.PacketWeight()
	for _, band := range rule.PacketBands {
		if band.Contains(perPacket) {
			res.PacketID = band.PacketID
			return res
		}
	}
	res.PacketID = rule.DefaultPacketID
	return res
}
