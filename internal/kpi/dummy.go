package kpi

import (
	"math"
	"math/rand"
)

// DummyBusinessUnits are the business units of the demo dataset.
var DummyBusinessUnits = []string{"BU1", "BU2", "BU3"}

// DummyDataset regenerates the demo table: every business unit reports every
// catalog KPI for January to June, plus one row per eligible subdivision.
// The same seed always yields the same values.
func DummyDataset(seed int64, catalog *ChartCatalog) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	var rows []Row

	for _, bu := range DummyBusinessUnits {
		for _, entry := range catalog.Entries() {
			base := dummyBase(entry)
			subs := EligibleSubdivisions(entry.Perspective, entry.KPI)
			for m := January; m <= June; m++ {
				value := round2(base * (0.9 + 0.2*rng.Float64()))
				if entry.Chart.Unit == "%" {
					value = math.Min(value, 100)
				}
				rows = append(rows, Row{
					BusinessUnit: bu,
					Month:        m,
					Perspective:  entry.Perspective,
					KPI:          entry.KPI,
					Value:        value,
				})
				for _, sub := range subs {
					rows = append(rows, Row{
						BusinessUnit: bu,
						Month:        m,
						Perspective:  entry.Perspective,
						KPI:          entry.KPI,
						Subdivision:  sub,
						Value:        round2(value * (0.5 + rng.Float64()) / float64(len(subs))),
					})
				}
			}
		}
	}

	return MustDataset(rows)
}

func dummyBase(e CatalogEntry) float64 {
	if e.Chart.Target != nil {
		return *e.Chart.Target
	}
	switch e.Chart.Unit {
	case "%":
		return 25
	case "$M":
		return 3
	case "hours":
		return 12
	}
	return 40
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
