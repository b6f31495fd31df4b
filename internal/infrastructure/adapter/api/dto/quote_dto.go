package dto

// QuoteRequest represents the API request for a price lookup
type QuoteRequest struct {
	Symbol string `form:"symbol" json:"symbol" binding:"required"`
}

// QuoteResponse represents a live price for one symbol
type QuoteResponse struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Price   string `json:"price"`
	Display string `json:"display"`
}
