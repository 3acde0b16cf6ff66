package entity

const ContractStateID = 1

// ContractState is the single-row flat state of the contract: the
// deployment owner, the monotonic token id counter and the total
// supply. The owner is written once at deploy time and never rotated.
type ContractState struct {
	Base

	ID int `gorm:"primaryKey"`

	OwnerAddress string
	TokenCounter int64
	TotalSupply  int64
}
