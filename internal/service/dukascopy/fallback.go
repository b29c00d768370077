package dukascopy

import "FxPulse/internal/domain/models"

// FallbackPairs returns a static major-pairs snapshot for when the quote
// feed is unavailable. Callers get a fresh copy on every call.
func FallbackPairs() []models.CurrencyPair {
	return []models.CurrencyPair{
		{ID: 1020, Symbol: "EUR/USD", Def: 1, Group: "majors", Bid: "1.07834", Ask: "1.07841", Descr: "Euro vs US Dollar", Delay: 0},
		{ID: 1032, Symbol: "USD/JPY", Def: 1, Group: "majors", Bid: "148.672", Ask: "148.681", Descr: "US Dollar vs Yen", Delay: 0},
		{ID: 1026, Symbol: "GBP/USD", Def: 1, Group: "majors", Bid: "1.28702", Ask: "1.28711", Descr: "Pound Sterling vs US Dollar", Delay: 0},
		{ID: 1022, Symbol: "USD/CHF", Def: 1, Group: "majors", Bid: "0.89721", Ask: "0.89731", Descr: "US Dollar vs Swiss Franc", Delay: 0},
		{ID: 1028, Symbol: "AUD/USD", Def: 1, Group: "majors", Bid: "0.65432", Ask: "0.65442", Descr: "Australian Dollar vs US Dollar", Delay: 0},
		{ID: 1030, Symbol: "USD/CAD", Def: 1, Group: "majors", Bid: "1.35621", Ask: "1.35631", Descr: "US Dollar vs Canadian Dollar", Delay: 0},
		{ID: 1034, Symbol: "NZD/USD", Def: 1, Group: "majors", Bid: "0.60123", Ask: "0.60133", Descr: "New Zealand Dollar vs US Dollar", Delay: 0},
	}
}

// FallbackEvents returns a static calendar week for when the event feed is
// unavailable. Callers get a fresh copy on every call.
func FallbackEvents() []models.EconomicEvent {
	return []models.EconomicEvent{
		{
			Date: "2025-03-02T21:45:00+0000", ID: "14429318", Country: "NZ", Currency: "NZD",
			EventTag: "NZ_TerofTraInd", Title: "Terms of Trade Index",
			Description: "The Terms of Trade Index released by the Statistics New Zealand is a measure of balance amount between import and export. A positive value shows a trade surplus while a negative value shows a trade deficit.",
			Impact:      "2",
			Actual:      "3.10%", ActualNorm: "3.100",
			Forecast: "1.10%", ForecastNorm: "1.100",
			Previous: "2.40%", PreviousNorm: "2.400",
			SourceLink: "http://www.stats.govt.nz/", ValueFormat: "%0.1f%%",
		},
		{
			Date: "2025-03-03T01:30:00+0000", ID: "14429319", Country: "AU", Currency: "AUD",
			EventTag: "AU_RetSal", Title: "Retail Sales",
			Description: "Retail Sales measure the change in the total value of sales at the retail level.",
			Impact:      "3",
			Actual:      "0.3%", ActualNorm: "0.300",
			Forecast: "0.2%", ForecastNorm: "0.200",
			Previous: "0.1%", PreviousNorm: "0.100",
			ValueFormat: "%0.1f%%",
		},
		{
			Date: "2025-03-03T09:30:00+0000", ID: "14429320", Country: "GB", Currency: "GBP",
			EventTag: "GB_PMI_Con", Title: "Construction PMI",
			Description: "The Construction PMI measures the activity level of purchasing managers in the construction sector.",
			Impact:      "1",
			Actual:      "52.4", ActualNorm: "52.400",
			Forecast: "51.9", ForecastNorm: "51.900",
			Previous: "51.7", PreviousNorm: "51.700",
			ValueFormat: "%0.1f",
		},
		{
			Date: "2025-03-03T13:45:00+0000", ID: "14429321", Country: "US", Currency: "USD",
			EventTag: "US_PMI_Ser", Title: "Services PMI",
			Description: "The Services PMI measures the activity level of purchasing managers in the services sector.",
			Impact:      "3",
			Actual:      "54.8", ActualNorm: "54.800",
			Forecast: "54.0", ForecastNorm: "54.000",
			Previous: "53.6", PreviousNorm: "53.600",
			ValueFormat: "%0.1f",
		},
		{
			Date: "2025-03-04T00:30:00+0000", ID: "14429322", Country: "AU", Currency: "AUD",
			EventTag: "AU_CurAcc", Title: "Current Account",
			Description: "The Current Account measures the difference in value between exported and imported goods, services, and interest payments.",
			Impact:      "2",
			Actual:      "7.8B", ActualNorm: "7.800",
			Forecast: "6.5B", ForecastNorm: "6.500",
			Previous: "5.2B", PreviousNorm: "5.200",
			ValueFormat: "%0.1fB",
		},
		{
			Date: "2025-03-04T13:30:00+0000", ID: "14429323", Country: "CA", Currency: "CAD",
			EventTag: "CA_TraBal", Title: "Trade Balance",
			Description: "The Trade Balance measures the difference in value between imported and exported goods and services.",
			Impact:      "2",
			Actual:      "1.2B", ActualNorm: "1.200",
			Forecast: "0.8B", ForecastNorm: "0.800",
			Previous: "0.5B", PreviousNorm: "0.500",
			ValueFormat: "%0.1fB",
		},
		{
			Date: "2025-03-05T09:30:00+0000", ID: "14429324", Country: "GB", Currency: "GBP",
			EventTag: "GB_PMI_Ser", Title: "Services PMI",
			Description: "The Services PMI measures the activity level of purchasing managers in the services sector.",
			Impact:      "2",
			Actual:      "53.8", ActualNorm: "53.800",
			Forecast: "53.5", ForecastNorm: "53.500",
			Previous: "53.1", PreviousNorm: "53.100",
			ValueFormat: "%0.1f",
		},
	}
}
