package dto

// TradeRequest represents the API request for buying or selling shares.
// Shares arrives as a string so fractional or non-numeric input can be
// rejected with a clear error instead of a bind failure.
type TradeRequest struct {
	Symbol string `form:"symbol" json:"symbol" binding:"required"`
	Shares string `form:"shares" json:"shares" binding:"required"`
}

// TradeResponse represents a committed buy or sell
type TradeResponse struct {
	Symbol     string `json:"symbol"`
	Shares     int64  `json:"shares"`
	Side       string `json:"side"`
	Price      string `json:"price"`
	Total      string `json:"total"`
	Cash       string `json:"cash"`
	ExecutedAt string `json:"executedAt"`
}

// SellFormResponse lists the symbols the user currently holds, for
// populating the sell form
type SellFormResponse struct {
	Symbols []string `json:"symbols"`
}
