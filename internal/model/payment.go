package model

type PaymentReceivedRequest struct {
	From string `json:"from"`

	// Identity of the contract that invoked the payment callback.
	// Only the configured payment-token contract is accepted.
	CallingContract string `json:"calling_contract"`

	Amount int64 `json:"amount"`

	// Absent data means the payment is not a purchase attempt.
	// Otherwise it carries the token id being bought.
	Data string `json:"data"`
}

type PaymentReceivedResponse struct {
	TokenID string `json:"token_id"`
}
