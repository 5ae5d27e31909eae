package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/vsinha/factoryops/pkg/domain/entities"
	"github.com/vsinha/factoryops/pkg/domain/masterdata"
)

func record(product, size string, weightKg, packets int64) *entities.ProductionRecord {
	return &entities.ProductionRecord{
		ID:          "R1",
		Date:        "2025-12-03",
		ProductName: product,
		Size:        size,
		WeightKg:    decimal.NewFromInt(weightKg),
		DuplesPkt:   packets,
	}
}

func TestMaterialMapper_Resolve(t *testing.T) {
	logger, _ := test.NewNullLogger()
	mapper, err := NewMaterialMapper(masterdata.Default(), true, logger)
	if err != nil {
		t.Fatalf("Failed to create mapper: %v", err)
	}

	tests := []struct {
		name     string
		record   *entities.ProductionRecord
		expected entities.MaterialResolution
	}{
		{
			name:     "6013 fixed packet and carton",
			record:   record("SPARKWELD 6013", "3.2 x 350", 100, 20),
			expected: entities.MaterialResolution{PacketID: masterdata.Packet6013, CartonID: masterdata.Carton6013},
		},
		{
			name:     "7018 heavy packets",
			record:   record("SPARKWELD 7018", "3.2 x 350", 100, 20),
			expected: entities.MaterialResolution{PacketID: masterdata.Packet7018Five, CartonID: masterdata.Carton7018},
		},
		{
			name:     "7018 half packets",
			record:   record("SPARKWELD 7018", "2.6 x 350", 100, 40),
			expected: entities.MaterialResolution{PacketID: masterdata.Packet7018Half, CartonID: masterdata.Carton7018},
		},
		{
			name:     "7018 between bands defaults to 5kg",
			record:   record("SPARKWELD 7018", "3.2 x 350", 70, 20),
			expected: entities.MaterialResolution{PacketID: masterdata.Packet7018Five, CartonID: masterdata.Carton7018},
		},
		{
			name:     "7018 without packet count defaults to 5kg",
			record:   record("SPARKWELD 7018", "3.2 x 350", 70, 0),
			expected: entities.MaterialResolution{PacketID: masterdata.Packet7018Five, CartonID: masterdata.Carton7018},
		},
		{
			name:     "7018 vacuum 350 size override",
			record:   record("SPARKWELD 7018 VACUUM", "2.6 X 350", 48, 24),
			expected: entities.MaterialResolution{PacketID: masterdata.VacuumPacket350, CartonID: masterdata.VacuumCarton},
		},
		{
			name:   "7018 vacuum by packet weight consumes foil",
			record: record("SPARKWELD 7018 VACUUM", "4.0 x 450", 40, 20),
			expected: entities.MaterialResolution{
				PacketID: masterdata.VacuumPacket,
				CartonID: masterdata.VacuumCarton,
				FoilID:   masterdata.VacuumFoil,
			},
		},
		{
			name:     "7018 vacuum outside band keeps carton only",
			record:   record("SPARKWELD 7018 VACUUM", "4.0 x 450", 60, 20),
			expected: entities.MaterialResolution{CartonID: masterdata.VacuumCarton},
		},
		{
			name:   "uncatalogued vacuum product",
			record: record("GENERIC VACUUM ROD", "3.2 x 350", 40, 20),
			expected: entities.MaterialResolution{
				PacketID: masterdata.VacuumPacket,
				CartonID: masterdata.VacuumCarton,
				FoilID:   masterdata.VacuumFoil,
			},
		},
		{
			name:     "NIFE silver container",
			record:   record("SPARKWELD NIFE", "2.5 x 300", 10, 10),
			expected: entities.MaterialResolution{PacketID: masterdata.SilverContainer, CartonID: masterdata.Carton6013},
		},
		{
			name:     "NI gold container",
			record:   record("sparkweld ni", "2.5 x 300", 10, 10),
			expected: entities.MaterialResolution{PacketID: masterdata.GoldContainer, CartonID: masterdata.Carton6013},
		},
		{
			name:     "uncatalogued NIFE matched before NI",
			record:   record("SPARKWELD NIFE SPECIAL", "3.2 x 350", 10, 10),
			expected: entities.MaterialResolution{PacketID: masterdata.SilverContainer, CartonID: masterdata.Carton6013},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := mapper.Resolve(tt.record)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if res != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, res)
			}
		})
	}
}

func TestMaterialMapper_Unmapped(t *testing.T) {
	t.Run("strict", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		mapper, err := NewMaterialMapper(masterdata.Default(), true, logger)
		if err != nil {
			t.Fatalf("Failed to create mapper: %v", err)
		}

		_, err = mapper.Resolve(record("WIDGET", "1 x 1", 10, 1))
		if !errors.Is(err, ErrUnmappedProduct) {
			t.Errorf("Expected ErrUnmappedProduct, got %v", err)
		}
	})

	t.Run("lenient", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		mapper, err := NewMaterialMapper(masterdata.Default(), false, logger)
		if err != nil {
			t.Fatalf("Failed to create mapper: %v", err)
		}

		res, err := mapper.Resolve(record("WIDGET", "1 x 1", 10, 1))
		if err != nil {
			t.Fatalf("Expected no error in lenient mode, got %v", err)
		}
		if !res.IsEmpty() {
			t.Errorf("Expected empty resolution, got %+v", res)
		}
		if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
			t.Fatalf("Expected one warning, got %d entries", len(hook.Entries))
		}
		if hook.LastEntry().Data["product"] != "WIDGET" {
			t.Errorf("Expected product field WIDGET, got %v", hook.LastEntry().Data["product"])
		}
	})
}

func TestNewMaterialMapper_NilMaster(t *testing.T) {
	if _, err := NewMaterialMapper(nil, false, nil); err == nil {
		t.Error("Expected error for nil master data")
	}
}

func TestClassifyByName_WordBreaks(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		expected entities.FamilyKey
	}{
		{"ni across words stays 6013", "E6013 GREEN IRON", entities.FamilyKey{Family: "6013", Type: entities.Normal}},
		{"nife before ni", "Local NiFe Rod", entities.FamilyKey{Family: "NIFE", Type: entities.Container}},
		{"full width ni", "ＣＡＳＴ ＮＩ", entities.FamilyKey{Family: "NI", Type: entities.Container}},
		{"vacuum 7018", "bulk 7018 vacuum", entities.FamilyKey{Family: "7018", Type: entities.Vacuum}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := classifyByName(tt.product)
			if !ok {
				t.Fatalf("Expected %q to classify", tt.product)
			}
			if key != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, key)
			}
		})
	}
}
