package masterdata

import "github.com/vsinha/factoryops/pkg/domain/entities"

// Opening stock counts were taken on these dates. Events dated earlier are
// already reflected in the opening numbers and are never replayed.
const (
	FinishedGoodsBaseline entities.Date = "2025-12-01"
	PackingBaseline       entities.Date = "2025-12-01"
	RawMaterialBaseline   entities.Date = "2025-11-01"
)

type fgOpening struct {
	product string
	size    string
	kg      string
}

var finishedGoodsOpenings = []fgOpening{
	{"SPARKWELD 6013", "2.0 x 300", "640"},
	{"SPARKWELD 6013", "2.6 x 350", "2214"},
	{"SPARKWELD 6013", "3.2 x 350", "5120"},
	{"SPARKWELD 6013", "4.0 x 350", "3380"},
	{"SPARKWELD 7018", "2.6 x 350", "860"},
	{"SPARKWELD 7018", "3.2 x 350", "2940"},
	{"SPARKWELD 7018", "4.0 x 350", "1765"},
	{"SPARKWELD 7018", "5.0 x 450", "420"},
	{"SPARKWELD 7018 VACUUM", "2.6 x 350", "312"},
	{"SPARKWELD 7018 VACUUM", "3.2 x 350", "588"},
	{"SPARKWELD 7018 VACUUM", "4.0 x 450", "144"},
	{"SPARKWELD NI", "2.5 x 300", "85"},
	{"SPARKWELD NI", "3.2 x 350", "130"},
	{"SPARKWELD NIFE", "2.5 x 300", "60"},
	{"SPARKWELD NIFE", "3.2 x 350", "110"},
}

// Packing material ids referenced by the consumption rules
const (
	Packet6013      = "PM-PKT-6013"
	Carton6013      = "PM-CTN-6013"
	Packet7018Five  = "PM-PKT-7018-5"
	Packet7018Half  = "PM-PKT-7018-2.5"
	Carton7018      = "PM-CTN-7018"
	VacuumPacket350 = "PM-VPKT-350"
	VacuumPacket    = "PM-VPKT-STD"
	VacuumCarton    = "PM-CTN-VAC"
	VacuumFoil      = "PM-FOIL-VAC"
	GoldContainer   = "PM-JAR-GOLD"
	SilverContainer = "PM-JAR-SILVER"
)

func defaultPackingMaterials() []entities.Material {
	return []entities.Material{
		{ID: Packet6013, Name: "6013 Printed Packet 5kg", Category: entities.Packet, Unit: "pcs", Opening: kg("12000")},
		{ID: Carton6013, Name: "6013 Master Carton", Category: entities.Carton, Unit: "pcs", Opening: kg("3000")},
		{ID: Packet7018Five, Name: "7018 Packet 5kg", Category: entities.Packet, Unit: "pcs", Opening: kg("6000")},
		{ID: Packet7018Half, Name: "7018 Packet 2.5kg", Category: entities.Packet, Unit: "pcs", Opening: kg("4000")},
		{ID: Carton7018, Name: "7018 Master Carton", Category: entities.Carton, Unit: "pcs", Opening: kg("2500")},
		{ID: VacuumPacket350, Name: "Vacuum Packet 350mm Laminated", Category: entities.Packet, Unit: "pcs", Opening: kg("5000")},
		{ID: VacuumPacket, Name: "Vacuum Packet Standard", Category: entities.Packet, Unit: "pcs", Opening: kg("3000")},
		{ID: VacuumCarton, Name: "Vacuum Master Carton", Category: entities.Carton, Unit: "pcs", Opening: kg("1500")},
		{ID: VacuumFoil, Name: "Vacuum Foil Bag", Category: entities.Foil, Unit: "pcs", Opening: kg("3000")},
		{ID: GoldContainer, Name: "Gold Container (NI)", Category: entities.ContainerJar, Unit: "pcs", Opening: kg("2000")},
		{ID: SilverContainer, Name: "Silver Container (NIFE)", Category: entities.ContainerJar, Unit: "pcs", Opening: kg("2000")},
	}
}

func defaultRawMaterials() []entities.Material {
	return []entities.Material{
		{ID: "RM-WIRE-MS", Name: "MS Core Wire", Category: entities.RawMaterial, Unit: "kg", Opening: kg("18000")},
		{ID: "RM-FLUX-6013", Name: "6013 Flux Mix", Category: entities.RawMaterial, Unit: "kg", Opening: kg("6500")},
		{ID: "RM-FLUX-7018", Name: "7018 Flux Mix", Category: entities.RawMaterial, Unit: "kg", Opening: kg("4200")},
		{ID: "RM-SILICATE", Name: "Sodium Silicate", Category: entities.RawMaterial, Unit: "kg", Opening: kg("3000")},
		{ID: "RM-WIRE-NI", Name: "Nickel Core Wire", Category: entities.RawMaterial, Unit: "kg", Opening: kg("800")},
	}
}
