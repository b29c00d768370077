package models

// Action is the recommended move for a currency pair.
type Action string

const (
	ActionBuy  Action = "Buy"
	ActionSell Action = "Sell"
	ActionHold Action = "Hold"
	ActionWait Action = "Wait"
)

// Recommendation is a pure projection of a pair plus its relevant events.
// It is recomputed whenever either input changes and never persisted.
type Recommendation struct {
	Action     Action `json:"action"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// PairRecommendation couples a recommendation with the pair it scores.
type PairRecommendation struct {
	Symbol         string         `json:"symbol"`
	Bid            string         `json:"bid"`
	Ask            string         `json:"ask"`
	Recommendation Recommendation `json:"recommendation"`
}
