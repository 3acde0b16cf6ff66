package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	xcommon "github.com/lunamints/nftledger/internal/common"
	"github.com/lunamints/nftledger/internal/model"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestContractDomain(chainCaller *testutil.MockChainCaller) *contractDomain {
	contractStateRepo := repository.NewContractStateRepository()
	return NewContractDomain(
		xcommon.NewContractOwnerVerifier(contractStateRepo, chainCaller),
		contractStateRepo,
		chainCaller,
	)
}

func Test_contractDomain_Deploy(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	_, err := domain.Deploy(ctx, &model.DeployRequest{})
	require.NoError(t, err)

	state, err := repository.NewContractStateRepository().Get(ctx)
	require.NoError(t, err)
	require.Equal(t, testutil.ContractOwner.Hex(), state.OwnerAddress)
	require.Equal(t, int64(0), state.TotalSupply)
}

func Test_contractDomain_Redeploy(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	testutil.CreateFixtureDb(ctx)
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	_, err := domain.Deploy(ctx, &model.DeployRequest{})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.AlreadyExists})

	// Redeploying as an update is a no-op, never a conflict.
	_, err = domain.Deploy(ctx, &model.DeployRequest{IsUpdate: true})
	require.NoError(t, err)
}

func Test_contractDomain_DeployNoSender(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	_, err := domain.Deploy(ctx, &model.DeployRequest{})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.InvalidArgument})
}

func Test_contractDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	testutil.CreateFixtureDb(ctx)

	var gotCode, gotManifest []byte
	domain := newTestContractDomain(&testutil.MockChainCaller{
		UpdateContractFunc: func(_ context.Context, code, manifest []byte) error {
			gotCode, gotManifest = code, manifest
			return nil
		},
	})

	_, err := domain.Update(ctx, &model.UpdateContractRequest{
		Code:     []byte{0x01},
		Manifest: []byte(`{"name":"v2"}`),
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, gotCode)
	require.Equal(t, []byte(`{"name":"v2"}`), gotManifest)
}

func Test_contractDomain_UpdateUnauthorized(t *testing.T) {
	testcases := []struct {
		name        string
		ctx         context.Context
		chainCaller *testutil.MockChainCaller
	}{
		{
			name:        "not the recorded owner",
			ctx:         testutil.MockContextWithSender(testutil.OtherAccount),
			chainCaller: &testutil.MockChainCaller{},
		},
		{
			name: "owner without witness",
			ctx:  testutil.MockContextWithSender(testutil.ContractOwner),
			chainCaller: &testutil.MockChainCaller{
				CheckWitnessFunc: func(context.Context, common.Address) (bool, error) {
					return false, nil
				},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.CreateFixtureDb(tc.ctx)
			domain := newTestContractDomain(tc.chainCaller)

			_, err := domain.Update(tc.ctx, &model.UpdateContractRequest{Code: []byte{0x01}})
			require.ErrorIs(t, err, errorx.Error{Code: errorx.Unauthorized})
		})
	}
}

func Test_contractDomain_Withdraw(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	testutil.CreateFixtureDb(ctx)

	var gotFrom, gotTo common.Address
	var gotAmount *big.Int
	domain := newTestContractDomain(&testutil.MockChainCaller{
		NativeBalanceOfFunc: func(context.Context, common.Address) (*big.Int, error) {
			return big.NewInt(500), nil
		},
		TransferNativeFunc: func(_ context.Context, from, to common.Address, amount *big.Int) (bool, error) {
			gotFrom, gotTo, gotAmount = from, to, amount
			return true, nil
		},
	})

	resp, err := domain.Withdraw(ctx, &model.WithdrawRequest{Destination: testutil.OtherAccount.Hex()})
	require.NoError(t, err)
	require.True(t, resp.Transferred)
	require.Equal(t, testutil.ContractAddress, gotFrom)
	require.Equal(t, testutil.OtherAccount, gotTo)
	require.Equal(t, int64(500), gotAmount.Int64())
}

func Test_contractDomain_WithdrawZeroBalance(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	testutil.CreateFixtureDb(ctx)
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	resp, err := domain.Withdraw(ctx, &model.WithdrawRequest{Destination: testutil.OtherAccount.Hex()})
	require.NoError(t, err)
	require.False(t, resp.Transferred)
}

func Test_contractDomain_WithdrawUnauthorized(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.OtherAccount)
	testutil.CreateFixtureDb(ctx)
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	_, err := domain.Withdraw(ctx, &model.WithdrawRequest{Destination: testutil.OtherAccount.Hex()})
	require.ErrorIs(t, err, errorx.Error{Code: errorx.Unauthorized})
}

func Test_contractDomain_WithdrawInvalidDestination(t *testing.T) {
	ctx := testutil.MockContextWithSender(testutil.ContractOwner)
	testutil.CreateFixtureDb(ctx)
	domain := newTestContractDomain(&testutil.MockChainCaller{})

	for _, destination := range []string{"", "not-an-address", common.Address{}.Hex()} {
		_, err := domain.Withdraw(ctx, &model.WithdrawRequest{Destination: destination})
		require.ErrorIs(t, err, errorx.Error{Code: errorx.InvalidArgument})
	}
}
