package catalog

import (
	"testing"
)

func TestMethodEfficiency(t *testing.T) {
	if eff := MethodEfficiency("Smoked"); eff != 0.2 {
		t.Errorf("Expected 0.2 for Smoked, got %v", eff)
	}

	if eff := MethodEfficiency("Eaten"); eff != 0.6 {
		t.Errorf("Expected 0.6 for Eaten, got %v", eff)
	}

	if eff := MethodEfficiency(""); eff != DefaultEfficiency {
		t.Errorf("Expected default efficiency for missing method, got %v", eff)
	}

	if eff := MethodEfficiency("Snorted"); eff != DefaultEfficiency {
		t.Errorf("Expected default efficiency for unknown method, got %v", eff)
	}
}

func TestKnownMethod(t *testing.T) {
	for _, m := range ConsumptionMethods {
		if !KnownMethod(m.Name) {
			t.Errorf("Catalog method %s should be known", m.Name)
		}
	}

	if KnownMethod("Unknown") {
		t.Error("Unknown method should not be known")
	}
}

func TestConsumableDefaultWeight(t *testing.T) {
	if w := ConsumableDefaultWeight("Joints"); w != 0.6 {
		t.Errorf("Expected 0.6 for Joints, got %v", w)
	}

	if w := ConsumableDefaultWeight("Cartridges"); w != 0.33 {
		t.Errorf("Expected 0.33 for Cartridges, got %v", w)
	}

	if w := ConsumableDefaultWeight("Mystery"); w != DefaultGramsPerUnit {
		t.Errorf("Expected fallback weight for unknown type, got %v", w)
	}
}

func TestKnownRawProductType(t *testing.T) {
	if !KnownRawProductType("Flower-Buds") {
		t.Error("Flower-Buds should be a known product type")
	}

	if KnownRawProductType("Concentrate") {
		t.Error("Concentrate should not be a known product type")
	}
}
