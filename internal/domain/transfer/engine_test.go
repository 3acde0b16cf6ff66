package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestEngine(chainCaller *testutil.MockChainCaller) *Engine {
	return NewEngine(
		repository.NewTokenRepository(),
		repository.NewBalanceRepository(),
		repository.NewAccountTokenRepository(),
		repository.NewContractStateRepository(),
		repository.NewEventRepository(),
		chainCaller,
	)
}

func Test_Engine_MintAndTransfer(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockChainCaller{})

	token := &entity.Token{ID: "0", Owner: entity.EmptyOwner, Name: "A"}
	require.NoError(t, engine.Mint(ctx, token))

	balanceRepo := repository.NewBalanceRepository()
	poolBalance, err := balanceRepo.Get(ctx, entity.EmptyOwner)
	require.NoError(t, err)
	require.Equal(t, int64(1), poolBalance.Amount)

	state, err := repository.NewContractStateRepository().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), state.TotalSupply)

	require.NoError(t, engine.Transfer(ctx, common.Address{}, testutil.Buyer, "0", nil))

	got, err := repository.NewTokenRepository().GetByID(ctx, "0")
	require.NoError(t, err)
	require.Equal(t, testutil.Buyer.Hex(), got.Owner)

	// The pool entry is removed when it reaches zero.
	_, err = balanceRepo.Get(ctx, entity.EmptyOwner)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	buyerBalance, err := balanceRepo.Get(ctx, testutil.Buyer.Hex())
	require.NoError(t, err)
	require.Equal(t, int64(1), buyerBalance.Amount)

	accountTokens, err := repository.NewAccountTokenRepository().GetByOwner(ctx, testutil.Buyer.Hex())
	require.NoError(t, err)
	require.Len(t, accountTokens, 1)
	require.Equal(t, "0", accountTokens[0].TokenID)

	events, err := repository.NewEventRepository().GetByTokenID(ctx, "0")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, entity.EventTransfer, events[0].Name)
	require.Equal(t, "", events[0].From)
	require.Equal(t, entity.EmptyOwner, events[0].To)
	require.Equal(t, entity.EventTransfer, events[1].Name)
	require.Equal(t, entity.EmptyOwner, events[1].From)
	require.Equal(t, testutil.Buyer.Hex(), events[1].To)
}

func Test_Engine_TransferResetsSaleListing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockChainCaller{})

	token := &entity.Token{
		ID:        "0",
		Owner:     entity.EmptyOwner,
		Name:      "A",
		ForSale:   true,
		SaleType:  entity.SaleTypeFixedPrice,
		SalePrice: 10,
	}
	require.NoError(t, engine.Mint(ctx, token))
	require.NoError(t, engine.Transfer(ctx, common.Address{}, testutil.Buyer, "0", nil))

	got, err := repository.NewTokenRepository().GetByID(ctx, "0")
	require.NoError(t, err)
	require.False(t, got.ForSale)
	require.Empty(t, got.AllowedBuyer)
	require.Empty(t, got.SaleType)
	require.Zero(t, got.SalePrice)
}

func Test_Engine_TransferUnknownToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockChainCaller{})

	err := engine.Transfer(ctx, common.Address{}, testutil.Buyer, "missing", nil)
	require.ErrorIs(t, err, errorx.Error{Code: errorx.NotFound})
}

func Test_Engine_TransferWrongHolder(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	engine := newTestEngine(&testutil.MockChainCaller{})
	require.NoError(t, engine.Mint(ctx, &entity.Token{ID: "0", Owner: entity.EmptyOwner}))

	err := engine.Transfer(ctx, testutil.OtherAccount, testutil.Buyer, "0", nil)
	require.ErrorIs(t, err, errorx.Error{Code: errorx.TransferFailed})
}

func Test_Engine_ReceiptCallback(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var gotTokenID string
	chainCaller := &testutil.MockChainCaller{
		IsContractFunc: func(_ context.Context, address common.Address) (bool, error) {
			return address == testutil.Buyer, nil
		},
		CallTokenReceivedFunc: func(_ context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error {
			gotTokenID = tokenID
			return nil
		},
	}

	engine := newTestEngine(chainCaller)
	require.NoError(t, engine.Mint(ctx, &entity.Token{ID: "0", Owner: entity.EmptyOwner}))
	require.NoError(t, engine.Transfer(ctx, common.Address{}, testutil.Buyer, "0", nil))
	require.Equal(t, "0", gotTokenID)
}

func Test_Engine_ReceiptCallbackFailure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	chainCaller := &testutil.MockChainCaller{
		IsContractFunc: func(_ context.Context, address common.Address) (bool, error) {
			return true, nil
		},
		CallTokenReceivedFunc: func(_ context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error {
			return errors.New("rejected")
		},
	}

	engine := newTestEngine(chainCaller)
	require.NoError(t, engine.Mint(ctx, &entity.Token{ID: "0", Owner: entity.EmptyOwner}))

	err := engine.Transfer(ctx, common.Address{}, testutil.Buyer, "0", nil)
	require.ErrorIs(t, err, errorx.Error{Code: errorx.TransferFailed})
}
