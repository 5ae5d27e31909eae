// Package masterdata holds the compiled-in reference data shared by every
// projection: the product catalog, the opening-balance tables and the
// packing-material consumption rules.
package masterdata

import (
	"fmt"
	"sort"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

// Master is one consistent set of reference data
type Master struct {
	Catalog          []*entities.ProductDefinition
	FinishedGoods    []entities.MasterItem
	PackingMaterials []entities.Material
	RawMaterials     []entities.Material
	Rules            map[entities.FamilyKey]entities.MaterialRule
	FoilConsumers    map[string]string

	FinishedGoodsBaseline entities.Date
	PackingBaseline       entities.Date
	RawMaterialBaseline   entities.Date

	products map[string]*entities.ProductDefinition
}

// Default returns the factory's reference data. It panics if the compiled-in
// tables are inconsistent.
func Default() *Master {
	m, err := New(
		defaultCatalog(),
		defaultFinishedGoods(),
		defaultPackingMaterials(),
		defaultRawMaterials(),
		defaultMaterialRules(),
		defaultFoilConsumers(),
	)
	if err != nil {
		panic(fmt.Sprintf("masterdata: %v", err))
	}
	m.FinishedGoodsBaseline = FinishedGoodsBaseline
	m.PackingBaseline = PackingBaseline
	m.RawMaterialBaseline = RawMaterialBaseline
	return m
}

// New assembles and validates a Master. Baselines are left zero for the
// caller to set.
func New(
	catalog []*entities.ProductDefinition,
	finishedGoods []entities.MasterItem,
	packing, raw []entities.Material,
	rules map[entities.FamilyKey]entities.MaterialRule,
	foil map[string]string,
) (*Master, error) {
	m := &Master{
		Catalog:          catalog,
		FinishedGoods:    finishedGoods,
		PackingMaterials: packing,
		RawMaterials:     raw,
		Rules:            rules,
		FoilConsumers:    foil,
		products:         make(map[string]*entities.ProductDefinition, len(catalog)),
	}
	for _, def := range catalog {
		name := entities.NormalizeToken(def.DisplayName)
		if _, exists := m.products[name]; exists {
			return nil, fmt.Errorf("duplicate catalog product %s", def.DisplayName)
		}
		m.products[name] = def
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate cross-checks the tables: every opening row names a catalog
// product and size, every catalog family has a material rule, and every
// rule points at a known packing material.
func (m *Master) Validate() error {
	seen := make(map[entities.ItemKey]bool, len(m.FinishedGoods))
	for _, item := range m.FinishedGoods {
		def, ok := m.Product(item.Product)
		if !ok {
			return fmt.Errorf("opening balance references unknown product %s", item.Product)
		}
		if !def.HasSize(item.Size) {
			return fmt.Errorf("opening balance references unknown size %s for %s", item.Size, item.Product)
		}
		if seen[item.Key] {
			return fmt.Errorf("duplicate opening balance for %s", item.Key)
		}
		seen[item.Key] = true
	}

	materials := make(map[string]bool, len(m.PackingMaterials))
	for _, mat := range m.PackingMaterials {
		if materials[mat.ID] {
			return fmt.Errorf("duplicate packing material %s", mat.ID)
		}
		materials[mat.ID] = true
	}

	for _, def := range m.Catalog {
		key := entities.FamilyKey{Family: def.Family, Type: def.Type}
		if _, ok := m.Rules[key]; !ok {
			return fmt.Errorf("no material rule for product family %s", key)
		}
	}
	for key, rule := range m.Rules {
		for _, id := range rule.MaterialIDs() {
			if !materials[id] {
				return fmt.Errorf("material rule %s references unknown material %s", key, id)
			}
		}
	}
	for packet, foil := range m.FoilConsumers {
		if !materials[packet] || !materials[foil] {
			return fmt.Errorf("foil rule %s -> %s references unknown material", packet, foil)
		}
	}
	return nil
}

// Product looks up a catalog entry by display name, normalized
func (m *Master) Product(name string) (*entities.ProductDefinition, bool) {
	def, ok := m.products[entities.NormalizeToken(name)]
	return def, ok
}

// PackingItems returns the packing materials as projector master items
func (m *Master) PackingItems() []entities.MasterItem {
	return materialItems(m.PackingMaterials)
}

// RawItems returns the raw materials as projector master items
func (m *Master) RawItems() []entities.MasterItem {
	return materialItems(m.RawMaterials)
}

// FinishedGoodsIndex maps every FG key to its master row
func (m *Master) FinishedGoodsIndex() map[entities.ItemKey]entities.MasterItem {
	out := make(map[entities.ItemKey]entities.MasterItem, len(m.FinishedGoods))
	for _, item := range m.FinishedGoods {
		out[item.Key] = item
	}
	return out
}

func materialItems(materials []entities.Material) []entities.MasterItem {
	items := make([]entities.MasterItem, 0, len(materials))
	for _, mat := range materials {
		items = append(items, entities.MasterItem{
			Key:     entities.MaterialKey(mat.ID),
			ItemID:  mat.ID,
			Name:    mat.Name,
			Unit:    mat.Unit,
			Opening: mat.Opening,
		})
	}
	return items
}

func defaultFinishedGoods() []entities.MasterItem {
	items := make([]entities.MasterItem, 0, len(finishedGoodsOpenings))
	for _, row := range finishedGoodsOpenings {
		items = append(items, entities.MasterItem{
			Key:     entities.ProductKey(row.product, row.size),
			Product: row.product,
			Size:    row.size,
			Name:    row.product + " " + row.size,
			Unit:    "kg",
			Opening: kg(row.kg),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})
	return items
}
