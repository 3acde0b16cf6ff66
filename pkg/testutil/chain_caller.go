package testutil

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type MockChainCaller struct {
	CheckWitnessFunc      func(ctx context.Context, identity common.Address) (bool, error)
	IsContractFunc        func(ctx context.Context, address common.Address) (bool, error)
	NativeBalanceOfFunc   func(ctx context.Context, address common.Address) (*big.Int, error)
	TransferNativeFunc    func(ctx context.Context, from, to common.Address, amount *big.Int) (bool, error)
	CallTokenReceivedFunc func(ctx context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error
	UpdateContractFunc    func(ctx context.Context, code, manifest []byte) error
}

func (c *MockChainCaller) CheckWitness(ctx context.Context, identity common.Address) (bool, error) {
	if c.CheckWitnessFunc != nil {
		return c.CheckWitnessFunc(ctx, identity)
	}

	return true, nil
}

func (c *MockChainCaller) IsContract(ctx context.Context, address common.Address) (bool, error) {
	if c.IsContractFunc != nil {
		return c.IsContractFunc(ctx, address)
	}

	return false, nil
}

func (c *MockChainCaller) NativeBalanceOf(ctx context.Context, address common.Address) (*big.Int, error) {
	if c.NativeBalanceOfFunc != nil {
		return c.NativeBalanceOfFunc(ctx, address)
	}

	return big.NewInt(0), nil
}

func (c *MockChainCaller) TransferNative(ctx context.Context, from, to common.Address, amount *big.Int) (bool, error) {
	if c.TransferNativeFunc != nil {
		return c.TransferNativeFunc(ctx, from, to, amount)
	}

	return true, nil
}

func (c *MockChainCaller) CallTokenReceived(ctx context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error {
	if c.CallTokenReceivedFunc != nil {
		return c.CallTokenReceivedFunc(ctx, recipient, from, amount, tokenID, data)
	}

	return nil
}

func (c *MockChainCaller) UpdateContract(ctx context.Context, code, manifest []byte) error {
	if c.UpdateContractFunc != nil {
		return c.UpdateContractFunc(ctx, code, manifest)
	}

	return nil
}

func (c *MockChainCaller) Close() {}
