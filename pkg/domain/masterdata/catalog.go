package masterdata

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/factoryops/pkg/domain/entities"
)

func kg(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// sized maps every size to the same weight
func sized(weight string, sizes ...string) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(sizes))
	for _, s := range sizes {
		m[s] = kg(weight)
	}
	return m
}

func merge(maps ...map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// mustProduct panics on an invalid catalog literal
func mustProduct(
	family string,
	productType entities.ProductType,
	displayName string,
	sizes []string,
	packetWeights, cartonWeights map[string]decimal.Decimal,
) *entities.ProductDefinition {
	def, err := entities.NewProductDefinition(family, productType, displayName, sizes, packetWeights, cartonWeights)
	if err != nil {
		panic(err)
	}
	return def
}

func defaultCatalog() []*entities.ProductDefinition {
	return []*entities.ProductDefinition{
		mustProduct(
			"6013", entities.Normal, "SPARKWELD 6013",
			[]string{"2.0 x 300", "2.6 x 350", "3.2 x 350", "4.0 x 350"},
			merge(sized("2.5", "2.0 x 300"), sized("5", "2.6 x 350", "3.2 x 350", "4.0 x 350")),
			sized("20", "2.0 x 300", "2.6 x 350", "3.2 x 350", "4.0 x 350"),
		),
		mustProduct(
			"7018", entities.Normal, "SPARKWELD 7018",
			[]string{"2.6 x 350", "3.2 x 350", "4.0 x 350", "5.0 x 450"},
			merge(sized("2.5", "2.6 x 350"), sized("5", "3.2 x 350", "4.0 x 350", "5.0 x 450")),
			sized("20", "2.6 x 350", "3.2 x 350", "4.0 x 350", "5.0 x 450"),
		),
		mustProduct(
			"7018", entities.Vacuum, "SPARKWELD 7018 VACUUM",
			[]string{"2.6 x 350", "3.2 x 350", "4.0 x 450"},
			sized("2", "2.6 x 350", "3.2 x 350", "4.0 x 450"),
			sized("12", "2.6 x 350", "3.2 x 350", "4.0 x 450"),
		),
		mustProduct(
			"NI", entities.Container, "SPARKWELD NI",
			[]string{"2.5 x 300", "3.2 x 350"},
			sized("1", "2.5 x 300", "3.2 x 350"),
			sized("10", "2.5 x 300", "3.2 x 350"),
		),
		mustProduct(
			"NIFE", entities.Container, "SPARKWELD NIFE",
			[]string{"2.5 x 300", "3.2 x 350"},
			sized("1", "2.5 x 300", "3.2 x 350"),
			sized("10", "2.5 x 300", "3.2 x 350"),
		),
	}
}
