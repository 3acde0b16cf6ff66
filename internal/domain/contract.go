package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/internal/client"
	xcommon "github.com/lunamints/nftledger/internal/common"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/internal/model"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/xcontext"
	"gorm.io/gorm"
)

type ContractDomain interface {
	Deploy(context.Context, *model.DeployRequest) (*model.DeployResponse, error)
	Update(context.Context, *model.UpdateContractRequest) (*model.UpdateContractResponse, error)
	Withdraw(context.Context, *model.WithdrawRequest) (*model.WithdrawResponse, error)
}

type contractDomain struct {
	ownerVerifier     *xcommon.ContractOwnerVerifier
	contractStateRepo repository.ContractStateRepository
	chainCaller       client.ChainCaller
}

func NewContractDomain(
	ownerVerifier *xcommon.ContractOwnerVerifier,
	contractStateRepo repository.ContractStateRepository,
	chainCaller client.ChainCaller,
) *contractDomain {
	return &contractDomain{
		ownerVerifier:     ownerVerifier,
		contractStateRepo: contractStateRepo,
		chainCaller:       chainCaller,
	}
}

// Deploy records the deploying sender as the immutable contract owner.
// Redeploying as an update keeps the recorded owner untouched.
func (d *contractDomain) Deploy(ctx context.Context, req *model.DeployRequest) (*model.DeployResponse, error) {
	if req.IsUpdate {
		return &model.DeployResponse{}, nil
	}

	sender := xcontext.RequestSender(ctx)
	if sender == (common.Address{}) {
		return nil, errorx.New(errorx.InvalidArgument, "Deploy transaction has no sender")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	_, err := d.contractStateRepo.Get(ctx)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Contract is already deployed")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Unable to get contract state: %v", err)
		return nil, errorx.Unknown
	}

	state := &entity.ContractState{OwnerAddress: sender.Hex()}
	if err := d.contractStateRepo.Create(ctx, state); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to record contract owner: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	xcontext.Logger(ctx).Infof("Contract deployed with owner %s", sender.Hex())
	return &model.DeployResponse{}, nil
}

func (d *contractDomain) Update(ctx context.Context, req *model.UpdateContractRequest) (*model.UpdateContractResponse, error) {
	if err := d.ownerVerifier.Verify(ctx); err != nil {
		xcontext.Logger(ctx).Debugf("Update denied: %v", err)
		return nil, errorx.New(errorx.Unauthorized, "Only the contract owner can update the contract")
	}

	if err := d.chainCaller.UpdateContract(ctx, req.Code, req.Manifest); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update contract: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateContractResponse{}, nil
}

// Withdraw moves the contract's whole native-token balance to the
// destination. A zero balance is not an error, just nothing to do.
func (d *contractDomain) Withdraw(ctx context.Context, req *model.WithdrawRequest) (*model.WithdrawResponse, error) {
	if err := d.ownerVerifier.Verify(ctx); err != nil {
		xcontext.Logger(ctx).Debugf("Withdraw denied: %v", err)
		return nil, errorx.New(errorx.Unauthorized, "Only the contract owner can withdraw")
	}

	if !common.IsHexAddress(req.Destination) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid withdrawal address")
	}

	destination := common.HexToAddress(req.Destination)
	if destination == (common.Address{}) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid withdrawal address")
	}

	contractAddress := common.HexToAddress(xcontext.Configs(ctx).Contract.Address)
	balance, err := d.chainCaller.NativeBalanceOf(ctx, contractAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to get native balance: %v", err)
		return nil, errorx.Unknown
	}

	if balance.Sign() <= 0 {
		return &model.WithdrawResponse{Transferred: false}, nil
	}

	ok, err := d.chainCaller.TransferNative(ctx, contractAddress, destination, balance)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to transfer native balance: %v", err)
		return nil, errorx.New(errorx.TransferFailed, "Native transfer failed")
	}

	if !ok {
		return nil, errorx.New(errorx.TransferFailed, "Native transfer rejected")
	}

	return &model.WithdrawResponse{Transferred: true}, nil
}
