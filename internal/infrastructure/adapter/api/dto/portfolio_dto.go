package dto

// PositionResponse is one held symbol in the portfolio
type PositionResponse struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
	Price  string `json:"price"`
	Value  string `json:"value"`
}

// PortfolioResponse is the portfolio grouped by symbol plus cash and
// the grand total. Positions is an empty array, not null, when the
// user holds nothing.
type PortfolioResponse struct {
	Positions []PositionResponse `json:"positions"`
	Cash      string             `json:"cash"`
	Total     string             `json:"total"`
}

// HistoryEntryResponse is one row of the trade ledger
type HistoryEntryResponse struct {
	Symbol     string `json:"symbol"`
	Shares     int64  `json:"shares"`
	Side       string `json:"side"`
	Price      string `json:"price"`
	ExecutedAt string `json:"executedAt"`
}

// HistoryResponse is the full ledger for one user, newest first
type HistoryResponse struct {
	Transactions []HistoryEntryResponse `json:"transactions"`
}
