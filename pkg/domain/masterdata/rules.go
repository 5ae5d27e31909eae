package masterdata

import "github.com/vsinha/factoryops/pkg/domain/entities"

func defaultMaterialRules() map[entities.FamilyKey]entities.MaterialRule {
	rules := []entities.MaterialRule{
		{
			Key:      entities.FamilyKey{Family: "6013", Type: entities.Normal},
			PacketID: Packet6013,
			CartonID: Carton6013,
		},
		{
			Key:      entities.FamilyKey{Family: "7018", Type: entities.Normal},
			CartonID: Carton7018,
			PacketBands: []entities.WeightBand{
				{Min: kg("4.5"), MinExclusive: true, PacketID: Packet7018Five},
				{Min: kg("2.0"), Max: kg("3.0"), PacketID: Packet7018Half},
			},
			DefaultPacketID: Packet7018Five,
		},
		{
			Key:      entities.FamilyKey{Family: "7018", Type: entities.Vacuum},
			CartonID: VacuumCarton,
			SizeOverrides: []entities.SizeOverride{
				{SizeContains: "350", PacketID: VacuumPacket350, CartonID: VacuumCarton},
			},
			PacketBands: []entities.WeightBand{
				{Min: kg("1.5"), Max: kg("2.5"), PacketID: VacuumPacket},
			},
		},
		// Vacuum lines of families that have no dedicated rule
		{
			Key:      entities.FamilyKey{Family: "", Type: entities.Vacuum},
			CartonID: VacuumCarton,
			PacketBands: []entities.WeightBand{
				{Min: kg("1.5"), Max: kg("2.5"), PacketID: VacuumPacket},
			},
		},
		{
			Key:      entities.FamilyKey{Family: "NI", Type: entities.Container},
			PacketID: GoldContainer,
			CartonID: Carton6013,
		},
		{
			Key:      entities.FamilyKey{Family: "NIFE", Type: entities.Container},
			PacketID: SilverContainer,
			CartonID: Carton6013,
		},
	}

	out := make(map[entities.FamilyKey]entities.MaterialRule, len(rules))
	for _, r := range rules {
		out[r.Key] = r
	}
	return out
}

// One foil bag goes into every packet of these kinds
func defaultFoilConsumers() map[string]string {
	return map[string]string{
		VacuumPacket: VacuumFoil,
	}
}
