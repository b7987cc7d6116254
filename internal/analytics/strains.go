package analytics

import (
	"sort"
	"time"

	"greenery/internal/catalog"
	"greenery/internal/models"
)

// StrainAnalytics is the per-strain cost-benefit record. CostPerMgTHC is the
// core economic KPI: what a milligram of delivered active ingredient costs.
type StrainAnalytics struct {
	Strain         string    `json:"strain"`
	TotalGrams     float64   `json:"total_grams"`
	TotalCost      float64   `json:"total_cost"`
	AvgTHCContent  float64   `json:"avg_thc_content"`
	AvgEfficiency  float64   `json:"avg_efficiency"`
	PricePerGram   float64   `json:"price_per_gram"`
	CostPerMgTHC   float64   `json:"cost_per_mg_thc"`
	EffectiveTHCMg float64   `json:"effective_thc_mg"`
	SessionsCount  int       `json:"sessions_count"`
	AvgRating      float64   `json:"avg_rating"`
	LastUsed       time.Time `json:"last_used"`
}

type strainAccumulator struct {
	grams      float64
	cost       float64
	thcSamples []float64
	efficiency []float64
	sessions   int
	ratings    []float64
	lastUsed   time.Time
}

// AggregateStrains joins consumption entries with raw-product cost and THC
// data by product name and computes per-strain economics, sorted by total
// grams descending. The join is by exact name match: entries only carry a
// display name. Cost is additive across raw products sharing a strain name.
func AggregateStrains(entries []models.ConsumptionEntry, products []models.RawProduct) []StrainAnalytics {
	acc := make(map[string]*strainAccumulator)
	var order []string

	for _, entry := range entries {
		strain := entry.ProductName
		data, ok := acc[strain]
		if !ok {
			data = &strainAccumulator{lastUsed: entry.ConsumedAt}
			acc[strain] = data
			order = append(order, strain)
		}

		data.grams += entry.Amount
		data.efficiency = append(data.efficiency, catalog.MethodEfficiency(entry.ConsumptionMethod))
		data.sessions++
		if entry.Rating != nil {
			data.ratings = append(data.ratings, float64(*entry.Rating))
		}
		if entry.ConsumedAt.After(data.lastUsed) {
			data.lastUsed = entry.ConsumedAt
		}
	}

	for _, product := range products {
		data, ok := acc[product.StrainName]
		if !ok {
			continue
		}
		if product.Cost != nil {
			data.cost += *product.Cost
		}
		if product.THCContent != nil {
			data.thcSamples = append(data.thcSamples, *product.THCContent)
		}
	}

	results := make([]StrainAnalytics, 0, len(order))
	for _, strain := range order {
		data := acc[strain]

		avgTHC := catalog.DefaultTHCPercent
		if len(data.thcSamples) > 0 {
			avgTHC = mean(data.thcSamples)
		}

		avgEfficiency := catalog.DefaultEfficiency
		if len(data.efficiency) > 0 {
			avgEfficiency = mean(data.efficiency)
		}

		effectiveTHCMg := data.grams * (avgTHC / 100) * avgEfficiency * 1000

		var pricePerGram float64
		if data.grams > 0 {
			pricePerGram = data.cost / data.grams
		}

		var costPerMgTHC float64
		if effectiveTHCMg > 0 {
			costPerMgTHC = data.cost / effectiveTHCMg
		}

		var avgRating float64
		if len(data.ratings) > 0 {
			avgRating = mean(data.ratings)
		}

		results = append(results, StrainAnalytics{
			Strain:         strain,
			TotalGrams:     data.grams,
			TotalCost:      data.cost,
			AvgTHCContent:  avgTHC,
			AvgEfficiency:  avgEfficiency,
			PricePerGram:   pricePerGram,
			CostPerMgTHC:   costPerMgTHC,
			EffectiveTHCMg: effectiveTHCMg,
			SessionsCount:  data.sessions,
			AvgRating:      avgRating,
			LastUsed:       data.lastUsed,
		})
	}

	// Stable sort keeps encounter order for equal totals.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalGrams > results[j].TotalGrams
	})

	return results
}

// AverageCostPerMgTHC summarizes the cost KPI across strains, 0 when there is
// no data.
func AverageCostPerMgTHC(strains []StrainAnalytics) float64 {
	if len(strains) == 0 {
		return 0
	}
	var sum float64
	for _, s := range strains {
		sum += s.CostPerMgTHC
	}
	return sum / float64(len(strains))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
