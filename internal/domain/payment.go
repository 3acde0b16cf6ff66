package domain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/internal/domain/transfer"
	"github.com/lunamints/nftledger/internal/model"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/xcontext"
	"gorm.io/gorm"
)

type PaymentDomain interface {
	OnPaymentReceived(context.Context, *model.PaymentReceivedRequest) (*model.PaymentReceivedResponse, error)
}

type paymentDomain struct {
	engine    *transfer.Engine
	tokenRepo repository.TokenRepository
}

func NewPaymentDomain(
	engine *transfer.Engine,
	tokenRepo repository.TokenRepository,
) *paymentDomain {
	return &paymentDomain{
		engine:    engine,
		tokenRepo: tokenRepo,
	}
}

// OnPaymentReceived is invoked by the platform after a payment-token
// transfer named this contract as recipient. A payment carrying a
// token id in its data is a purchase attempt; the payer becomes the
// new owner or the whole call fails and the platform rolls the payment
// back with it.
func (d *paymentDomain) OnPaymentReceived(ctx context.Context, req *model.PaymentReceivedRequest) (*model.PaymentReceivedResponse, error) {
	if req.Data == "" {
		return &model.PaymentReceivedResponse{}, nil
	}

	tokenID := req.Data
	payment := xcontext.Configs(ctx).Contract.Payment

	if !common.IsHexAddress(req.CallingContract) ||
		common.HexToAddress(req.CallingContract) != common.HexToAddress(payment.TokenAddress) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid payment source")
	}

	if req.Amount < payment.MinAmount {
		return nil, errorx.New(errorx.PolicyRejected, "Insufficient payment amount")
	}

	if payment.MaxAmount > 0 && req.Amount > payment.MaxAmount {
		return nil, errorx.New(errorx.PolicyRejected, "Payment amount is too large")
	}

	if !common.IsHexAddress(req.From) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid payer address")
	}

	buyer := common.HexToAddress(req.From)
	if buyer == (common.Address{}) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid payer address")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	token, err := d.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token %s", tokenID)
		}

		xcontext.Logger(ctx).Errorf("Unable to get token %s: %v", tokenID, err)
		return nil, errorx.Unknown
	}

	if token.IsOwned() {
		return nil, errorx.New(errorx.PolicyRejected, "Token %s already has an owner", tokenID)
	}

	// Unreachable while the previous rule holds; becomes live the
	// moment a resale path is added.
	if token.Owner == buyer.Hex() {
		return nil, errorx.New(errorx.PolicyRejected, "Sender already owns token %s", tokenID)
	}

	if token.AllowedBuyer != "" && token.AllowedBuyer != buyer.Hex() {
		return nil, errorx.New(errorx.PolicyRejected, "Token %s is reserved for another buyer", tokenID)
	}

	if err := d.engine.Transfer(ctx, token.OwnerAddress(), buyer, tokenID, nil); err != nil {
		return nil, err
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.PaymentReceivedResponse{TokenID: tokenID}, nil
}
