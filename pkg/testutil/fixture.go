package testutil

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/internal/repository"
)

var (
	ContractOwner       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	Buyer               = common.HexToAddress("0x2222222222222222222222222222222222222222")
	OtherAccount        = common.HexToAddress("0x3333333333333333333333333333333333333333")
	ContractAddress     = common.HexToAddress("0x4444444444444444444444444444444444444444")
	PaymentTokenAddress = common.HexToAddress("0x5555555555555555555555555555555555555555")
)

// CreateFixtureDb records ContractOwner as the deployed contract
// owner, the state every operation except deploy expects to exist.
func CreateFixtureDb(ctx context.Context) {
	contractStateRepo := repository.NewContractStateRepository()
	err := contractStateRepo.Create(ctx, &entity.ContractState{
		OwnerAddress: ContractOwner.Hex(),
	})
	if err != nil {
		panic(err)
	}
}
