package common

import (
	"context"
	"fmt"

	"github.com/lunamints/nftledger/internal/client"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

// ContractOwnerVerifier is the gate in front of every privileged
// operation. It passes only when the request sender equals the stored
// contract owner and the platform holds a witness proof for that
// identity.
type ContractOwnerVerifier struct {
	contractStateRepo repository.ContractStateRepository
	chainCaller       client.ChainCaller
}

func NewContractOwnerVerifier(
	contractStateRepo repository.ContractStateRepository,
	chainCaller client.ChainCaller,
) *ContractOwnerVerifier {
	return &ContractOwnerVerifier{
		contractStateRepo: contractStateRepo,
		chainCaller:       chainCaller,
	}
}

func (verifier *ContractOwnerVerifier) Verify(ctx context.Context) error {
	state, err := verifier.contractStateRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("contract owner is not recorded: %w", err)
	}

	sender := xcontext.RequestSender(ctx)
	if sender.Hex() != state.OwnerAddress {
		return fmt.Errorf("sender is not the contract owner")
	}

	witnessed, err := verifier.chainCaller.CheckWitness(ctx, sender)
	if err != nil {
		return fmt.Errorf("cannot check witness: %w", err)
	}

	if !witnessed {
		return fmt.Errorf("no witness for the contract owner")
	}

	return nil
}
