package kpi

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Card is one metric card: the value for the selected month and how it moved
// against the month before.
type Card struct {
	KPI       string   `json:"kpi"`
	Value     float64  `json:"value"`
	Previous  *float64 `json:"previous,omitempty"`
	ChangePct *float64 `json:"changePct,omitempty"`
}

// PerspectiveCards groups the cards of one perspective.
type PerspectiveCards struct {
	Perspective Perspective `json:"perspective"`
	Cards       []Card      `json:"cards"`
}

// Scorecard is everything one dashboard render pass needs for a selection.
type Scorecard struct {
	BusinessUnit string             `json:"businessUnit"`
	Month        Month              `json:"month"`
	Perspectives []PerspectiveCards `json:"perspectives"`
}

// Scorecard builds the metric cards for bu in month. Every KPI the business
// unit reports gets a card; missing values read as 0.
func (ds *Dataset) Scorecard(bu string, month Month) Scorecard {
	sc := Scorecard{BusinessUnit: bu, Month: month, Perspectives: []PerspectiveCards{}}

	type kpiRef struct {
		perspective Perspective
		kpi         string
	}
	var refs []kpiRef
	seen := make(map[string]bool)
	for _, r := range ds.Filter(Selection{BusinessUnit: bu}) {
		if seen[r.KPI] {
			continue
		}
		seen[r.KPI] = true
		refs = append(refs, kpiRef{r.Perspective, r.KPI})
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].perspective.rank() < refs[j].perspective.rank()
	})

	for _, ref := range refs {
		card := Card{KPI: ref.kpi, Value: ds.LookupScalar(bu, month, ref.kpi)}
		if prevMonth, ok := month.Previous(); ok {
			prev := ds.LookupScalar(bu, prevMonth, ref.kpi)
			card.Previous = &prev
			card.ChangePct = ChangePercent(prev, card.Value)
		}

		n := len(sc.Perspectives)
		if n == 0 || sc.Perspectives[n-1].Perspective != ref.perspective {
			sc.Perspectives = append(sc.Perspectives, PerspectiveCards{Perspective: ref.perspective})
			n++
		}
		sc.Perspectives[n-1].Cards = append(sc.Perspectives[n-1].Cards, card)
	}
	return sc
}

// ChangePercent is the change from previous to current in percent, rounded to
// two places. It is nil when previous is 0 or either value is not finite.
func ChangePercent(previous, current float64) *float64 {
	if !Finite(previous) || !Finite(current) {
		return nil
	}
	prev := decimal.NewFromFloat(previous)
	if prev.IsZero() {
		return nil
	}
	pct, _ := decimal.NewFromFloat(current).
		Sub(prev).
		Div(prev.Abs()).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return &pct
}
