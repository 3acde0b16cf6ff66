package transfer

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/internal/client"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/xcontext"
	"gorm.io/gorm"
)

// Engine applies ownership changes to the token ledger. It assumes the
// caller has already authorized the operation; its own job is keeping
// the token record, the balance ledger, the account index and the
// supply counter in lockstep inside the caller's database transaction.
//
// Ordering is strict: every ledger mutation happens before the receipt
// callback on the recipient contract, so a reentrant call observes
// fully updated state. A callback failure fails the operation and the
// surrounding transaction rolls every mutation back.
type Engine struct {
	tokenRepo         repository.TokenRepository
	balanceRepo       repository.BalanceRepository
	accountTokenRepo  repository.AccountTokenRepository
	contractStateRepo repository.ContractStateRepository
	eventRepo         repository.EventRepository
	chainCaller       client.ChainCaller
}

func NewEngine(
	tokenRepo repository.TokenRepository,
	balanceRepo repository.BalanceRepository,
	accountTokenRepo repository.AccountTokenRepository,
	contractStateRepo repository.ContractStateRepository,
	eventRepo repository.EventRepository,
	chainCaller client.ChainCaller,
) *Engine {
	return &Engine{
		tokenRepo:         tokenRepo,
		balanceRepo:       balanceRepo,
		accountTokenRepo:  accountTokenRepo,
		contractStateRepo: contractStateRepo,
		eventRepo:         eventRepo,
		chainCaller:       chainCaller,
	}
}

// Mint records a brand new token. There is no previous holder, so only
// the initial owner's ledger entries and the total supply are touched.
func (e *Engine) Mint(ctx context.Context, token *entity.Token) error {
	if err := e.tokenRepo.Create(ctx, token); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to create token record: %v", err)
		return errorx.Unknown
	}

	if err := e.adjustBalance(ctx, token.Owner, token.ID, +1); err != nil {
		return err
	}

	if err := e.adjustTotalSupply(ctx, +1); err != nil {
		return err
	}

	return e.postTransfer(ctx, nil, token.OwnerAddress(), token.ID, nil)
}

// Transfer moves the token from its current holder to the given
// address and resets the sale listing. The from address must name the
// current holder; a mismatch is a structural violation, not a policy
// rejection.
func (e *Engine) Transfer(ctx context.Context, from, to common.Address, tokenID string, data []byte) error {
	token, err := e.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found token %s", tokenID)
		}

		xcontext.Logger(ctx).Errorf("Unable to get token %s: %v", tokenID, err)
		return errorx.Unknown
	}

	if token.Owner != from.Hex() {
		return errorx.New(errorx.TransferFailed,
			"Token %s is not held by %s", tokenID, from.Hex())
	}

	token.Owner = to.Hex()
	token.ForSale = false
	token.AllowedBuyer = ""
	token.SaleType = ""
	token.SalePrice = 0
	if err := e.tokenRepo.Save(ctx, token); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update token %s: %v", tokenID, err)
		return errorx.Unknown
	}

	if err := e.adjustBalance(ctx, from.Hex(), tokenID, -1); err != nil {
		return err
	}

	if err := e.adjustBalance(ctx, to.Hex(), tokenID, +1); err != nil {
		return err
	}

	return e.postTransfer(ctx, &from, to, tokenID, data)
}

// adjustBalance moves one holder's token count by delta and keeps the
// account index in lockstep. The balance row is removed entirely when
// the count reaches zero; absence of a row means zero.
func (e *Engine) adjustBalance(ctx context.Context, owner, tokenID string, delta int64) error {
	balance, err := e.balanceRepo.Get(ctx, owner)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Unable to get balance of %s: %v", owner, err)
			return errorx.Unknown
		}

		balance = nil
	}

	newAmount := delta
	if balance != nil {
		newAmount = balance.Amount + delta
	}

	if newAmount < 0 {
		xcontext.Logger(ctx).Errorf("Balance of %s would drop below zero", owner)
		return errorx.Unknown
	}

	switch {
	case newAmount == 0:
		err = e.balanceRepo.Delete(ctx, owner)
	case balance == nil:
		err = e.balanceRepo.Create(ctx, &entity.Balance{Owner: owner, Amount: newAmount})
	default:
		balance.Amount = newAmount
		err = e.balanceRepo.Save(ctx, balance)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update balance of %s: %v", owner, err)
		return errorx.Unknown
	}

	if delta > 0 {
		err = e.accountTokenRepo.Create(ctx, &entity.AccountToken{Owner: owner, TokenID: tokenID})
	} else {
		err = e.accountTokenRepo.Delete(ctx, owner, tokenID)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update account index of %s: %v", owner, err)
		return errorx.Unknown
	}

	return nil
}

func (e *Engine) adjustTotalSupply(ctx context.Context, delta int64) error {
	state, err := e.contractStateRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to get contract state: %v", err)
		return errorx.Unknown
	}

	state.TotalSupply += delta
	if err := e.contractStateRepo.Save(ctx, state); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update total supply: %v", err)
		return errorx.Unknown
	}

	return nil
}

// postTransfer records the Transfer notification and, when the
// recipient is a contract, invokes its receipt callback. A nil from
// marks a mint-time assignment.
func (e *Engine) postTransfer(ctx context.Context, from *common.Address, to common.Address, tokenID string, data []byte) error {
	fromHex := ""
	if from != nil {
		fromHex = from.Hex()
	}

	event := &entity.EventLog{
		ID:      xcontext.SnowFlake(ctx).Generate().Int64(),
		Name:    entity.EventTransfer,
		TokenID: tokenID,
		From:    fromHex,
		To:      to.Hex(),
		Amount:  1,
	}
	if err := e.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to record transfer event: %v", err)
		return errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Transferred token %s from %q to %s", tokenID, fromHex, to.Hex())

	if to == (common.Address{}) {
		return nil
	}

	isContract, err := e.chainCaller.IsContract(ctx, to)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to resolve recipient %s: %v", to.Hex(), err)
		return errorx.New(errorx.TransferFailed, "Cannot resolve recipient")
	}

	if !isContract {
		return nil
	}

	var fromAddr common.Address
	if from != nil {
		fromAddr = *from
	}

	if err := e.chainCaller.CallTokenReceived(ctx, to, fromAddr, 1, tokenID, data); err != nil {
		xcontext.Logger(ctx).Warnf("Receipt callback rejected token %s: %v", tokenID, err)
		return errorx.New(errorx.TransferFailed, "Recipient rejected the token")
	}

	return nil
}
