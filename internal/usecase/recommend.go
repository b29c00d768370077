package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"FxPulse/internal/domain/models"
)

// GenerateRecommendation scores a currency pair against the given economic
// events and returns a buy/sell/hold call. It is a pure function: no I/O, no
// state, and it always returns a value.
//
// Each relevant event contributes impact_rank * (+1|-1) to the score of the
// currency it belongs to; the overall score is base minus quote. Confidence
// scales with the absolute score, capped at 95.
func GenerateRecommendation(pair models.CurrencyPair, events []models.EconomicEvent) models.Recommendation {
	base, quote, ok := pair.Currencies()
	if !ok {
		return models.Recommendation{
			Action:     models.ActionWait,
			Confidence: 0,
			Reason:     "Invalid currency pair format",
		}
	}

	relevant := make([]models.EconomicEvent, 0, len(events))
	for _, ev := range events {
		if ev.Currency == base || ev.Currency == quote {
			relevant = append(relevant, ev)
		}
	}

	if len(relevant) == 0 {
		return models.Recommendation{
			Action:     models.ActionWait,
			Confidence: 30,
			Reason:     "No relevant economic events found for this currency pair",
		}
	}

	// Highest impact first; stable so ties keep their original order and the
	// cited "most impactful" event is reproducible.
	sorted := make([]models.EconomicEvent, len(relevant))
	copy(sorted, relevant)
	sort.SliceStable(sorted, func(i, j int) bool {
		return impactRank(sorted[i]) > impactRank(sorted[j])
	})

	mostImpactful := sorted[0]

	baseScore := 0
	quoteScore := 0
	for _, ev := range sorted {
		score := impactRank(ev)
		if !isEventPositive(ev) {
			score = -score
		}
		if ev.Currency == base {
			baseScore += score
		} else {
			quoteScore += score
		}
	}

	// Positive favors the base currency, negative the quote currency.
	overallScore := baseScore - quoteScore

	absScore := overallScore
	if absScore < 0 {
		absScore = -absScore
	}
	confidence := absScore * 10
	if confidence > 95 {
		confidence = 95
	}

	switch {
	case absScore < 2:
		if confidence < 40 {
			confidence = 40
		}
		return models.Recommendation{
			Action:     models.ActionHold,
			Confidence: confidence,
			Reason:     fmt.Sprintf("Neutral outlook based on %d economic indicators", len(sorted)),
		}
	case overallScore > 0:
		return models.Recommendation{
			Action:     models.ActionBuy,
			Confidence: confidence,
			Reason:     fmt.Sprintf("Positive outlook for %s based on %s", base, mostImpactful.Title),
		}
	default:
		return models.Recommendation{
			Action:     models.ActionSell,
			Confidence: confidence,
			Reason:     fmt.Sprintf("Positive outlook for %s based on %s", quote, mostImpactful.Title),
		}
	}
}

func impactRank(ev models.EconomicEvent) int {
	n, err := strconv.Atoi(ev.Impact)
	if err != nil {
		return 0
	}
	return n
}

// isEventPositive decides whether an event outcome favors its currency.
// Default rule: actual above forecast is positive. For indicators where lower
// is better the rule inverts; the list is two hardcoded substrings, a known
// simplification kept on purpose rather than a full indicator taxonomy.
func isEventPositive(ev models.EconomicEvent) bool {
	if ev.Actual == "" || ev.Forecast == "" {
		return false
	}

	actual, err1 := strconv.ParseFloat(ev.ActualNorm, 64)
	forecast, err2 := strconv.ParseFloat(ev.ForecastNorm, 64)
	if err1 != nil || err2 != nil {
		return false
	}

	title := strings.ToLower(ev.Title)
	lowerIsBetter := strings.Contains(title, "unemployment") || strings.Contains(title, "inflation")

	if lowerIsBetter {
		return actual < forecast
	}
	return actual > forecast
}
