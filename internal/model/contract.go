package model

type DeployRequest struct {
	IsUpdate bool `json:"is_update"`
}

type DeployResponse struct{}

type UpdateContractRequest struct {
	Code     []byte `json:"code"`
	Manifest []byte `json:"manifest"`
}

type UpdateContractResponse struct{}

type WithdrawRequest struct {
	Destination string `json:"destination"`
}

type WithdrawResponse struct {
	Transferred bool `json:"transferred"`
}
