package models

// OrderAction is the direction of a proposed order
type OrderAction string

const (
	OrderActionBuy  OrderAction = "buy"
	OrderActionHold OrderAction = "hold"
)

// Order is a single proposed position for a symbol
type Order struct {
	Symbol     string      `json:"symbol"`
	Action     OrderAction `json:"action"`
	Weight     float64     `json:"weight"`
	EntryRule  string      `json:"entry_rule"`
	Stop       float64     `json:"stop"`
	TakeProfit float64     `json:"take_profit"`
	Rationale  string      `json:"rationale"`
}

// Decision is the synthesized output of one investment meeting for a symbol.
// It always embeds the full list of input agent reports for auditability.
// Field names form the serialization contract consumed by the CLI and API.
type Decision struct {
	AsOfDate         string          `json:"as_of_date"`
	Symbol           string          `json:"symbol"`
	CompositeScore   float64         `json:"composite_score"`
	Orders           []Order         `json:"orders"`
	MaxGrossExposure float64         `json:"max_gross_exposure"`
	Notes            string          `json:"notes"`
	AgentReports     []AgentReport   `json:"agent_reports"`
	Backtest         *BacktestReport `json:"backtest,omitempty"`
}

// BuyWeight returns the summed weight of all buy orders for the symbol
func (d *Decision) BuyWeight() float64 {
	var weight float64
	for _, order := range d.Orders {
		if order.Action == OrderActionBuy && order.Symbol == d.Symbol {
			weight += order.Weight
		}
	}
	return weight
}
