// Package catalog holds the static lookup tables the analytics engine and
// handlers share: consumption-method efficiency factors, product type
// defaults, and the mood vocabulary. Pure constant data, no behavior beyond
// total lookup functions.
package catalog

// Fallback constants used whenever a lookup has no sample to work from.
const (
	// DefaultEfficiency is assumed when an entry has no recorded method or
	// the method is unknown.
	DefaultEfficiency = 0.3

	// DefaultTHCPercent is assumed for strains without any THC content
	// sample among their raw products.
	DefaultTHCPercent = 20.0

	// DefaultGramsPerUnit backs consumables recorded without a per-unit
	// weight.
	DefaultGramsPerUnit = 0.5
)

// ConsumptionMethod describes how much of the active ingredient one delivery
// route actually delivers.
type ConsumptionMethod struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Efficiency float64 `json:"efficiency"`
}

// ConsumptionMethods lists the supported delivery routes in display order.
var ConsumptionMethods = []ConsumptionMethod{
	{Name: "Smoked", Label: "Smoked (20% efficiency)", Efficiency: 0.2},
	{Name: "Vaporised", Label: "Vaporised (40% efficiency)", Efficiency: 0.4},
	{Name: "Eaten", Label: "Eaten (60% efficiency)", Efficiency: 0.6},
	{Name: "Tincture", Label: "Tincture", Efficiency: 0.5},
	{Name: "Topical", Label: "Topical", Efficiency: 0.3},
}

// MethodEfficiency returns the delivery efficiency for a method name. The
// lookup is total: an empty or unknown method falls back to
// DefaultEfficiency.
func MethodEfficiency(method string) float64 {
	for _, m := range ConsumptionMethods {
		if m.Name == method {
			return m.Efficiency
		}
	}
	return DefaultEfficiency
}

// KnownMethod reports whether the method name is part of the catalog.
func KnownMethod(method string) bool {
	for _, m := range ConsumptionMethods {
		if m.Name == method {
			return true
		}
	}
	return false
}

// ConsumableType carries the default per-unit weight for a consumable kind.
type ConsumableType struct {
	Name          string  `json:"name"`
	Label         string  `json:"label"`
	DefaultWeight float64 `json:"default_weight"`
}

var ConsumableTypes = []ConsumableType{
	{Name: "Joints", Label: "Joints", DefaultWeight: 0.6},
	{Name: "Cartridges", Label: "Cartridges", DefaultWeight: 0.33},
	{Name: "Edibles", Label: "Edibles", DefaultWeight: 1.0},
}

// ConsumableDefaultWeight returns the default grams-per-unit for a consumable
// type, or DefaultGramsPerUnit for unknown types.
func ConsumableDefaultWeight(consumableType string) float64 {
	for _, t := range ConsumableTypes {
		if t.Name == consumableType {
			return t.DefaultWeight
		}
	}
	return DefaultGramsPerUnit
}

// RawProductType labels the bulk inventory kinds.
type RawProductType struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

var RawProductTypes = []RawProductType{
	{Name: "Flower-Buds", Label: "Flower Buds"},
	{Name: "Hash", Label: "Hash"},
}

// KnownRawProductType reports whether the type name is part of the catalog.
func KnownRawProductType(productType string) bool {
	for _, t := range RawProductTypes {
		if t.Name == productType {
			return true
		}
	}
	return false
}

// MoodCategory describes one of the tracked mood scales.
type MoodCategory struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var MoodCategories = []MoodCategory{
	{Name: "energy", Label: "Energy Level", Description: "How energetic do you feel?"},
	{Name: "happiness", Label: "Happiness", Description: "How happy/content do you feel?"},
	{Name: "stress", Label: "Stress Level", Description: "How stressed do you feel?"},
	{Name: "focus", Label: "Focus", Description: "Improved concentration"},
	{Name: "anxiety", Label: "Anxiety Level", Description: "How anxious do you feel?"},
	{Name: "pain", Label: "Pain Level", Description: "How much physical discomfort do you feel?"},
}

// SideEffects lists the tags a mood record may carry.
var SideEffects = []string{
	"dryMouth", "hunger", "redEyes", "paranoia", "anxiety", "dizziness",
	"drowsiness", "couchLock", "giggles", "euphoria", "relaxation",
	"creativity", "painRelief", "nauseaRelief",
}

// Environments lists where a session took place.
var Environments = []string{
	"home", "outdoors", "social", "work", "friend's-place", "nature",
	"event", "restaurant", "car", "other",
}

// Activities lists what the user was doing during a session.
var Activities = []string{
	"relaxing", "creative", "physical", "entertainment", "social", "work",
	"watching", "gaming", "reading", "cooking", "cleaning", "music",
	"walking", "meditation", "sleep", "other",
}
