package model

type MintTokenRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type MintTokenResponse struct {
	TokenID string `json:"token_id"`
}

type GetPropertiesRequest struct {
	TokenID string `json:"token_id"`
}

type GetPropertiesResponse struct {
	Properties map[string]any `json:"properties"`
}

type ListForSaleRequest struct {
	TokenID      string `json:"token_id"`
	AllowedBuyer string `json:"allowed_buyer"`
	SaleType     string `json:"sale_type"`
	SalePrice    int64  `json:"sale_price"`
}

type ListForSaleResponse struct{}

type GetTokensOfRequest struct {
	Owner string `json:"owner"`
}

type GetTokensOfResponse struct {
	TokenIDs []string `json:"token_ids"`
}

type GetBalanceOfRequest struct {
	Owner string `json:"owner"`
}

type GetBalanceOfResponse struct {
	Balance int64 `json:"balance"`
}

type GetTotalSupplyRequest struct{}

type GetTotalSupplyResponse struct {
	TotalSupply int64 `json:"total_supply"`
}

type GetSymbolRequest struct{}

type GetSymbolResponse struct {
	Symbol string `json:"symbol"`
}
