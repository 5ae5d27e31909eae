package entities

import "testing"

func TestProductKey_Normalization(t *testing.T) {
	testCases := []struct {
		name    string
		product string
		size    string
	}{
		{"spaced upper", "SPARKWELD 6013", "3.2 X 350"},
		{"compact lower", "sparkweld6013", "3.2x350"},
		{"mixed with tabs", " SparkWeld\t6013 ", "3.2 x 350"},
		{"full width", "ＳＰＡＲＫＷＥＬＤ　６０１３", "３.２ｘ３５０"},
	}

	expected := ItemKey("SPARKWELD6013|3.2X350")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key := ProductKey(tc.product, tc.size)
			if key != expected {
				t.Errorf("Expected key %s, got %s", expected, key)
			}
		})
	}
}

func TestNormalizeToken_Idempotent(t *testing.T) {
	once := NormalizeToken("Sparkweld 7018 Vacuum")
	twice := NormalizeToken(once)
	if once != twice {
		t.Errorf("Expected normalization to be idempotent, got %s then %s", once, twice)
	}
	if MaterialKey("pm-ctn-6013") != MaterialKey("PM-CTN-6013") {
		t.Error("Expected material keys to ignore case")
	}
}
